package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"fashion-unlimited/internal/application/usecases"
	domainservices "fashion-unlimited/internal/domain/services"
	"fashion-unlimited/internal/domain/valueobjects"
	"fashion-unlimited/internal/infrastructure/config"
	"fashion-unlimited/internal/infrastructure/external"
	"fashion-unlimited/internal/infrastructure/logging"
	infraservices "fashion-unlimited/internal/infrastructure/services"
)

type options struct {
	mode    string
	person  string
	top     string
	bottom  string
	dress   string
	out     string
	report  string
	analyze bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("fitting", flag.ContinueOnError)
	fs.StringVar(&opts.mode, "mode", "WOMEN", "garment mode: MEN or WOMEN")
	fs.StringVar(&opts.person, "person", "", "portrait image (required)")
	fs.StringVar(&opts.top, "top", "", "top garment image")
	fs.StringVar(&opts.bottom, "bottom", "", "bottom garment image")
	fs.StringVar(&opts.dress, "dress", "", "dress image (WOMEN only)")
	fs.StringVar(&opts.out, "out", "tryon", "output image path; the extension follows the returned MIME type when omitted")
	fs.StringVar(&opts.report, "report", "", "write the condition report JSON here instead of stdout")
	fs.BoolVar(&opts.analyze, "analyze", false, "run the condition analysis only")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.person == "" {
		return options{}, fmt.Errorf("-person is required")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("config failed")
	}

	if err := run(context.Background(), cfg, opts); err != nil {
		log.Fatal().Err(err).Msg("fitting failed")
	}
}

func run(ctx context.Context, cfg config.Config, opts options) error {
	input, err := buildInput(opts)
	if err != nil {
		return err
	}

	clientPool := infraservices.NewClientPoolService(cfg.ClientConfig())
	defer clientPool.Close()

	aiService, err := external.NewFittingAIService(clientPool)
	if err != nil {
		return err
	}

	domainService := domainservices.NewFittingDomainService(aiService, aiService, domainservices.ModelSettings{
		AnalyzerModel:    cfg.AnalyzerModel,
		SynthesizerModel: cfg.SynthesizerModel,
	})
	useCase := usecases.NewTryOnUseCase(domainService, cfg.RequestTimeout, nil)

	if opts.analyze {
		output, err := useCase.Analyze(ctx, input)
		if err != nil {
			return err
		}
		return writeReport(opts.report, output.Report)
	}

	output, err := useCase.Execute(ctx, input)
	if err != nil {
		return err
	}

	path, err := writeImage(opts.out, output.Image)
	if err != nil {
		return err
	}
	log.Info().Str("request_id", string(output.RequestID)).Str("path", path).Msg("try-on image written")

	return writeReport(opts.report, output.Report)
}

func buildInput(opts options) (usecases.TryOnInput, error) {
	person, err := readUpload(opts.person)
	if err != nil {
		return usecases.TryOnInput{}, err
	}

	input := usecases.TryOnInput{
		Mode:     opts.mode,
		Person:   person,
		Garments: make(map[valueobjects.GarmentSlot]usecases.ImageUpload),
	}

	for slot, path := range map[valueobjects.GarmentSlot]string{
		valueobjects.SlotTop:    opts.top,
		valueobjects.SlotBottom: opts.bottom,
		valueobjects.SlotDress:  opts.dress,
	} {
		if path == "" {
			continue
		}
		upload, err := readUpload(path)
		if err != nil {
			return usecases.TryOnInput{}, err
		}
		input.Garments[slot] = upload
	}

	return input, nil
}

func readUpload(path string) (usecases.ImageUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return usecases.ImageUpload{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return usecases.ImageUpload{
		Data:     data,
		MimeType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
	}, nil
}

// writeImage decodes the result data URI and writes it to path.
func writeImage(path, dataURI string) (string, error) {
	img, err := valueobjects.ParseDataURI(dataURI)
	if err != nil {
		return "", fmt.Errorf("invalid result image: %w", err)
	}

	if filepath.Ext(path) == "" {
		path += "." + string(img.Format())
	}

	if err := os.WriteFile(path, img.Data(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func writeReport(path string, report any) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
