package product

import (
	"fmt"
	"slices"
	"strings"

	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
)

// VariantLabel renders the chosen options as "Name: value, Name: value" in the
// product's variant order. Every variant must be chosen with a listed option.
func (p Product) VariantLabel(selections map[string]string) (string, error) {
	if len(p.Variants) == 0 {
		if len(selections) > 0 {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "product has no variants")
		}
		return "", nil
	}

	parts := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		choice, ok := selections[v.Name]
		if !ok || choice == "" {
			return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %q must be selected", v.Name)).
				WithDetails(map[string]any{"variant": v.Name})
		}
		if !slices.Contains(v.Options, choice) {
			return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid option %q for variant %q", choice, v.Name)).
				WithDetails(map[string]any{"variant": v.Name, "options": v.Options})
		}
		parts = append(parts, v.Name+": "+choice)
	}
	if len(selections) != len(p.Variants) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown variant selected")
	}
	return strings.Join(parts, ", "), nil
}
