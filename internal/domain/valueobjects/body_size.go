package valueobjects

import "fmt"

type BodySize string

const (
	BodySizeS BodySize = "S"
	BodySizeM BodySize = "M"
	BodySizeL BodySize = "L"
)

var BodySizes = []BodySize{BodySizeS, BodySizeM, BodySizeL}

func ParseBodySize(s string) (BodySize, error) {
	for _, size := range BodySizes {
		if BodySize(s) == size {
			return size, nil
		}
	}
	return "", fmt.Errorf("body size must be one of S, M, L, got %q", s)
}

func (b BodySize) String() string {
	return string(b)
}
