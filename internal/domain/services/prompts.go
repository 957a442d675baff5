package services

import (
	"fmt"
	"strings"

	"fashion-unlimited/internal/domain/valueobjects"
)

// analysisInstruction depends on the mode only, so identical uploads always
// produce identical analyzer requests.
func analysisInstruction(mode valueobjects.GarmentMode) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Act as a Neural Fashion Stylist and Senior AI Research Engineer specializing in Virtual Try-on synthesis for %s.\n", mode.Subject()))
	sb.WriteString("TASK: Generate a 'Condition Map' for clothing synthesis and an outfit coordination analysis.\n")
	sb.WriteString("The first image is the person. Every following image is a reference garment, given in the order top, bottom, dress (absent ones are skipped).\n\n")

	sb.WriteString("1. POSE ESTIMATION: Map the skeletal structure and stance of the subject.\n")
	sb.WriteString("2. SPATIAL BOUNDARIES: Identify where the person is currently wearing clothes and the exact region each reference garment must cover.\n")
	sb.WriteString("3. SLEEVE LENGTH DETECTION: Precisely determine whether the PROVIDED reference garments (top or dress) have short/half sleeves or long sleeves. Do not infer sleeve length from the clothes the person is currently wearing.\n")
	sb.WriteString("4. OCCLUSION MAPPING: Identify foreground elements (hands, hair, watches, bags, accessories) that must stay in front of the new garment.\n")
	sb.WriteString("5. BODY SIZE: Estimate the person's body size as exactly one of S, M or L.\n")
	sb.WriteString("6. COORDINATION: Suggest matching pants, shoes and shirt based on the garment's vibe, and name that vibe. Always fill every suggestion, even when only one garment is provided.\n")
	sb.WriteString("7. TECHNICAL PROMPT: Write one self-contained synthesis instruction that states the detected sleeve length, the boundaries to replace and the occlusions to preserve.\n\n")

	sb.WriteString("Answer with the JSON object described by the response schema only. Every field is required and must not be empty.")

	return sb.String()
}

func synthesisInstruction(mode valueobjects.GarmentMode, technicalPrompt string, bodySize valueobjects.BodySize) string {
	var sb strings.Builder

	sb.WriteString("TASK: Virtual Try-on Synthesis.\n")
	sb.WriteString("The first image is the TEMPLATE: the master image for identity, pose and background. ")
	sb.WriteString("Every following image is a REFERENCE garment (top, bottom, dress order). Map each EXACT design onto the person.\n\n")

	sb.WriteString("CRITICAL INSTRUCTION: Sleeve Length Fidelity.\n")
	sb.WriteString("- Respect the reference garment's actual sleeve length. DO NOT default to the sleeve length of the clothing in the template.\n")
	sb.WriteString("- If the reference top is short-sleeved (half sleeves), render the person's actual arms and skin below the sleeve.\n")
	sb.WriteString("- Do NOT stretch a short-sleeved reference garment to cover long sleeves from the template.\n")
	sb.WriteString("- Maintain 1:1 texture, print and logo alignment.\n")
	sb.WriteString("- Preserve all foreground occlusions: hands, watches and accessories stay in front of the new garment.\n")
	sb.WriteString(fmt.Sprintf("- Fit the garments to a %s body size in the %s context.\n\n", bodySize, mode.Subject()))

	sb.WriteString("BLENDING CONTEXT: ")
	sb.WriteString(technicalPrompt)
	sb.WriteString("\n\nReturn a single photorealistic image.")

	return sb.String()
}
