// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dough

import (
	"fmt"
	"strings"
)

// Style identifies a named dough style used to seed defaults.
type Style string

// Supported styles.
const (
	StyleNeapolitan       Style = "neapolitan"
	StyleNewYork          Style = "new-york"
	StyleDetroit          Style = "detroit"
	StyleRoman            Style = "roman"
	StyleFocaccia         Style = "focaccia"
	StyleCiabatta         Style = "ciabatta"
	StyleCountrySourdough Style = "country-sourdough"
)

// DefaultStyle seeds configurations that name no style.
const DefaultStyle = StyleNeapolitan

// ParseStyle parses a string into a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "neapolitan", "napoletana", "vpn":
		return StyleNeapolitan, nil
	case "new-york", "newyork", "ny", "nyc":
		return StyleNewYork, nil
	case "detroit":
		return StyleDetroit, nil
	case "roman", "teglia", "al-taglio":
		return StyleRoman, nil
	case "focaccia":
		return StyleFocaccia, nil
	case "ciabatta":
		return StyleCiabatta, nil
	case "country-sourdough", "sourdough", "country":
		return StyleCountrySourdough, nil
	default:
		return "", fmt.Errorf("invalid recipe style: %s", s)
	}
}

// GetStyles returns all supported styles sorted alphabetically.
func GetStyles() []string {
	return []string{"ciabatta", "country-sourdough", "detroit", "focaccia", "neapolitan", "new-york", "roman"}
}

// BakeType is the product category.
type BakeType string

// Bake types.
const (
	BakePizza BakeType = "pizza"
	BakeBread BakeType = "bread"
)

// ParseBakeType parses a string into a BakeType.
func ParseBakeType(s string) (BakeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pizza":
		return BakePizza, nil
	case "bread", "loaf":
		return BakeBread, nil
	default:
		return "", fmt.Errorf("invalid bake type: %s", s)
	}
}

// GetBakeTypes returns all supported bake types.
func GetBakeTypes() []string {
	return []string{"bread", "pizza"}
}

// CalculationMode gates which optional fields are honored.
type CalculationMode string

// Calculation modes.
const (
	ModeBasic    CalculationMode = "basic"
	ModeAdvanced CalculationMode = "advanced"
)

// ParseCalculationMode parses a string into a CalculationMode.
func ParseCalculationMode(s string) (CalculationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic", "simple":
		return ModeBasic, nil
	case "advanced", "pro":
		return ModeAdvanced, nil
	default:
		return "", fmt.Errorf("invalid calculation mode: %s", s)
	}
}

// GetCalculationModes returns all supported modes.
func GetCalculationModes() []string {
	return []string{"advanced", "basic"}
}

// YeastType is the leavening agent.
type YeastType string

// Yeast types.
const (
	YeastFresh     YeastType = "fresh"
	YeastActiveDry YeastType = "active-dry"
	YeastInstant   YeastType = "instant"
	YeastNatural   YeastType = "natural"
)

// ParseYeastType parses a string into a YeastType.
func ParseYeastType(s string) (YeastType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fresh", "cake", "compressed":
		return YeastFresh, nil
	case "active-dry", "activedry", "ady", "dry":
		return YeastActiveDry, nil
	case "instant", "idy", "instant-dry":
		return YeastInstant, nil
	case "natural", "natural-culture", "sourdough", "levain", "starter":
		return YeastNatural, nil
	default:
		return "", fmt.Errorf("invalid yeast type: %s", s)
	}
}

// GetYeastTypes returns all supported yeast types.
func GetYeastTypes() []string {
	return []string{"active-dry", "fresh", "instant", "natural"}
}

// Family groups yeast types that share a leavening model.
type Family string

// Leavening families.
const (
	FamilyCommercial Family = "commercial"
	FamilyNatural    Family = "natural"
)

// Family returns the leavening family of the yeast type.
func (y YeastType) Family() Family {
	if y == YeastNatural {
		return FamilyNatural
	}
	return FamilyCommercial
}

// Technique is the fermentation workflow.
type Technique string

// Fermentation techniques.
const (
	TechniqueDirect     Technique = "direct"
	TechniquePreferment Technique = "preferment"
	TechniqueColdRetard Technique = "cold-retard"
)

// ParseTechnique parses a string into a Technique.
func ParseTechnique(s string) (Technique, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct", "same-day", "straight":
		return TechniqueDirect, nil
	case "preferment", "poolish", "biga", "sponge":
		return TechniquePreferment, nil
	case "cold-retard", "cold", "retard", "cold-retarded", "cold-ferment":
		return TechniqueColdRetard, nil
	default:
		return "", fmt.Errorf("invalid fermentation technique: %s", s)
	}
}

// GetTechniques returns all supported techniques.
func GetTechniques() []string {
	return []string{"cold-retard", "direct", "preferment"}
}
