package sections

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// fallbackCopy mirrors defaults.yaml.
type fallbackCopy struct {
	Hero         Hero         `yaml:"hero"`
	Stats        Stats        `yaml:"stats"`
	Testimonial  Testimonial  `yaml:"testimonial"`
	Process      Process      `yaml:"process"`
	Trust        Trust        `yaml:"trust"`
	Requirements Requirements `yaml:"requirements"`
	Contact      Contact      `yaml:"contact"`
	FAQ          FAQ          `yaml:"faq"`
	Header       Header       `yaml:"header"`
	Footer       Footer       `yaml:"footer"`
}

var fallback = mustLoadFallback(defaultsYAML)

func loadFallback(data []byte) (*fallbackCopy, error) {
	var fc fallbackCopy
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("sections: parse fallback copy: %w", err)
	}
	return &fc, nil
}

func mustLoadFallback(data []byte) *fallbackCopy {
	fc, err := loadFallback(data)
	if err != nil {
		panic(err)
	}
	return fc
}
