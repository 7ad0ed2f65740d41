package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// defaultConfigDoc is the commented template written on first run. Kept as
// a literal rather than marshaled from Defaults() so the comments survive.
const defaultConfigDoc = `# vahanlens configuration
# Registration database location.
db_path: %s

# Reload the dashboard when the database changes on disk.
auto_refresh: true
auto_refresh_debounce: 1s

ui:
  show_kpis: true
  # Style for the insights pane: dark or light.
  insights_style: dark

theme:
  accent: "#1F77B4"
  subtle: "#666666"
  positive: "#28A745"
  negative: "#DC3545"

# Defaults for 'vahanlens seed'.
seed:
  rng_seed: 42
  from_year: 2021
  to_year: 2023

# OpenTelemetry tracing for the report pipeline (off by default).
tracing:
  enabled: false
  exporter: file
  sample_rate: 1.0
`

// WriteDefaultConfig writes the commented default configuration to path,
// creating parent directories as needed. Refuses to overwrite an existing
// file.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	doc := fmt.Sprintf(defaultConfigDoc, DefaultDBPath)
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveSeed updates the seed section in the config file, preserving
// comments and formatting in other sections by working on yaml.Node.
func SaveSeed(configPath string, seed SeedConfig) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path is the user's config file
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	seedNode := buildSeedNode(seed)

	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "seed"},
						seedNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			// Find and replace the seed key, or append it
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "seed" {
					root.Content[i+1] = seedNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "seed"},
					seedNode,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func buildSeedNode(seed SeedConfig) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "rng_seed"},
			{Kind: yaml.ScalarNode, Value: strconv.FormatInt(seed.RNGSeed, 10)},
			{Kind: yaml.ScalarNode, Value: "from_year"},
			{Kind: yaml.ScalarNode, Value: strconv.Itoa(seed.FromYear)},
			{Kind: yaml.ScalarNode, Value: "to_year"},
			{Kind: yaml.ScalarNode, Value: strconv.Itoa(seed.ToYear)},
		},
	}
}
