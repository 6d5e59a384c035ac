// Package catalog holds the closed legal-area and piece-type configuration.
// Areas and their piece types are loaded once from YAML and validated at
// startup, replacing runtime string-keyed lookups with a fixed table: an
// unknown area or piece is a validation failure at the edge, never a lookup
// miss in business logic.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IconID identifies the UI icon for a legal area. The set is closed and
// resolved at load time.
type IconID string

const (
	IconScale     IconID = "scale"
	IconBriefcase IconID = "briefcase"
	IconFamily    IconID = "family"
	IconBuilding  IconID = "building"
	IconShield    IconID = "shield"
	IconCoins     IconID = "coins"
)

var validIcons = map[IconID]bool{
	IconScale:     true,
	IconBriefcase: true,
	IconFamily:    true,
	IconBuilding:  true,
	IconShield:    true,
	IconCoins:     true,
}

// PieceType is one kind of document drafted under a legal area.
type PieceType struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Area is a legal practice area with its drafting options.
type Area struct {
	Name   string      `yaml:"name" json:"name"`
	Icon   IconID      `yaml:"icon" json:"icon"`
	Pieces []PieceType `yaml:"pieces" json:"pieces"`
}

// Catalog is the validated area table consulted by the gateway when wizard
// selections arrive from the browser.
type Catalog struct {
	Areas []Area `yaml:"areas" json:"areas"`

	byName map[string]*Area
}

// Load reads and validates the catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if len(c.Areas) == 0 {
		return nil, fmt.Errorf("catalog defines no legal areas")
	}

	c.byName = make(map[string]*Area, len(c.Areas))
	for i := range c.Areas {
		area := &c.Areas[i]
		if area.Name == "" {
			return nil, fmt.Errorf("catalog area %d has no name", i)
		}
		if !validIcons[area.Icon] {
			return nil, fmt.Errorf("area %q has unknown icon %q", area.Name, area.Icon)
		}
		if len(area.Pieces) == 0 {
			return nil, fmt.Errorf("area %q defines no piece types", area.Name)
		}
		if _, dup := c.byName[area.Name]; dup {
			return nil, fmt.Errorf("duplicate area %q", area.Name)
		}
		for _, p := range area.Pieces {
			if p.Name == "" {
				return nil, fmt.Errorf("area %q has a piece type with no name", area.Name)
			}
		}
		c.byName[area.Name] = area
	}

	return &c, nil
}

// Area returns the named area, if configured.
func (c *Catalog) Area(name string) (*Area, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// Piece returns a piece type scoped under an area.
func (c *Catalog) Piece(areaName, pieceName string) (*PieceType, bool) {
	area, ok := c.byName[areaName]
	if !ok {
		return nil, false
	}
	for i := range area.Pieces {
		if area.Pieces[i].Name == pieceName {
			return &area.Pieces[i], true
		}
	}
	return nil, false
}

// Valid reports whether the area/piece pair is a configured combination.
func (c *Catalog) Valid(areaName, pieceName string) bool {
	_, ok := c.Piece(areaName, pieceName)
	return ok
}

// Default returns the built-in catalog used when no file is configured.
func Default() *Catalog {
	c, err := Parse([]byte(defaultCatalogYAML))
	if err != nil {
		// The embedded default is part of the build; failing to parse it is
		// a programming error.
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	return c
}

const defaultCatalogYAML = `
areas:
  - name: Direito Civil
    icon: scale
    pieces:
      - name: Petição Inicial
        description: Peça inaugural do processo de conhecimento
      - name: Contestação
        description: Resposta do réu à petição inicial
      - name: Réplica
        description: Manifestação do autor sobre a contestação
  - name: Direito do Consumidor
    icon: shield
    pieces:
      - name: Petição Inicial
        description: Ação fundada em relação de consumo
      - name: Recurso Inominado
        description: Recurso no âmbito dos juizados especiais
  - name: Direito do Trabalho
    icon: briefcase
    pieces:
      - name: Reclamação Trabalhista
        description: Ação perante a Justiça do Trabalho
      - name: Recurso Ordinário
        description: Recurso contra sentença trabalhista
  - name: Direito de Família
    icon: family
    pieces:
      - name: Ação de Alimentos
        description: Fixação ou revisão de pensão alimentícia
      - name: Ação de Divórcio
        description: Dissolução do vínculo conjugal
  - name: Direito Empresarial
    icon: building
    pieces:
      - name: Ação de Cobrança
        description: Cobrança de títulos e contratos empresariais
  - name: Direito Tributário
    icon: coins
    pieces:
      - name: Mandado de Segurança
        description: Impugnação de exigência fiscal ilegal
`
