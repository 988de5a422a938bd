package templates

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml pages/*.html assets/*
var files embed.FS

// FeatureCard is a titled feature tile on the dashboard
type FeatureCard struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Admin       bool   `yaml:"admin"`
}

// HomeContent holds the landing page copy
type HomeContent struct {
	Title    string   `yaml:"title"`
	Tagline  string   `yaml:"tagline"`
	Features []string `yaml:"features"`
}

// DashboardContent holds the dashboard feature tiles
type DashboardContent struct {
	Features     []FeatureCard `yaml:"features"`
	AdminFeature FeatureCard   `yaml:"admin_feature"`
}

// Content holds the static page copy from content.yaml
type Content struct {
	Home      HomeContent      `yaml:"home"`
	Dashboard DashboardContent `yaml:"dashboard"`
}

// LoadContent loads the page copy from the embedded content.yaml
func LoadContent() (*Content, error) {
	data, err := files.ReadFile("content.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	return ParseContent(data)
}

// ParseContent parses page copy in the content.yaml format
func ParseContent(data []byte) (*Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse page content: %w", err)
	}
	if content.Home.Title == "" {
		return nil, fmt.Errorf("page content is missing home.title")
	}
	content.Dashboard.AdminFeature.Admin = true
	return &content, nil
}
