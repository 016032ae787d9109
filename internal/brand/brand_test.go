package brand

import (
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		relativePath   string
		policy         Policy
		admitted       bool
		brand          string
		cleanSubFolder string
		cleanedName    string
		reason         string
	}{
		{
			name:           "filename names the brand",
			relativePath:   filepath.Join("BrandX", "BrandX_Chicken.png"),
			admitted:       true,
			brand:          "brandx",
			cleanSubFolder: "brandx",
			cleanedName:    "brandx_chicken",
		},
		{
			name:           "filename misses the brand",
			relativePath:   filepath.Join("BrandX", "Generic_Item.png"),
			admitted:       false,
			brand:          "brandx",
			cleanSubFolder: "brandx",
			cleanedName:    "generic_item",
			reason:         `Skipped: ` + filepath.Join("BrandX", "Generic_Item.png") + ` (does not contain brand "brandx")`,
		},
		{
			name:           "deepest folder is the brand",
			relativePath:   filepath.Join("Épicerie", "Al Safa", "Al Safa Kebab (Surgelé).jpg"),
			admitted:       true,
			brand:          "al_safa",
			cleanSubFolder: "epicerie/al_safa",
			cleanedName:    "al_safa_kebab_surgele",
		},
		{
			name:           "brand match is a substring check",
			relativePath:   filepath.Join("Safa", "Al-Safa_burger.webp"),
			admitted:       true,
			brand:          "safa",
			cleanSubFolder: "safa",
			cleanedName:    "al-safa_burger",
		},
		{
			name:           "only the last extension is stripped",
			relativePath:   filepath.Join("Nour", "nour.back.jpeg"),
			admitted:       true,
			brand:          "nour",
			cleanSubFolder: "nour",
			cleanedName:    "nourback",
		},
		{
			// Root images have an empty brand, which every name contains.
			name:           "root image admitted by default",
			relativePath:   "Anything.png",
			admitted:       true,
			brand:          "",
			cleanSubFolder: "",
			cleanedName:    "anything",
		},
		{
			name:         "root image rejected by policy",
			relativePath: "Anything.png",
			policy:       Policy{RejectRootImages: true},
			admitted:     false,
			cleanedName:  "anything",
			reason:       "Skipped: Anything.png (no brand folder)",
		},
		{
			name:         "folder that sanitizes to nothing behaves like root",
			relativePath: filepath.Join("!!!", "item.png"),
			policy:       Policy{RejectRootImages: true},
			admitted:     false,
			cleanedName:  "item",
			reason:       "Skipped: " + filepath.Join("!!!", "item.png") + " (no brand folder)",
		},
		{
			name:         "folder that sanitizes to nothing admitted by default",
			relativePath: filepath.Join("!!!", "item.png"),
			admitted:     true,
			cleanedName:  "item",
		},
		{
			name:           "empty identifier skipped",
			relativePath:   filepath.Join("BrandX", "(!!).png"),
			admitted:       false,
			brand:          "brandx",
			cleanSubFolder: "brandx",
			cleanedName:    "",
			reason:         "Skipped: " + filepath.Join("BrandX", "(!!).png") + " (name sanitizes to an empty identifier)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.relativePath, tt.policy)
			if d.Admitted != tt.admitted {
				t.Errorf("Expected admitted=%v, got %v (reason %q)", tt.admitted, d.Admitted, d.Reason)
			}
			if d.Brand != tt.brand {
				t.Errorf("Expected brand %q, got %q", tt.brand, d.Brand)
			}
			if d.CleanSubFolder != tt.cleanSubFolder {
				t.Errorf("Expected subfolder %q, got %q", tt.cleanSubFolder, d.CleanSubFolder)
			}
			if d.CleanedFilename != tt.cleanedName {
				t.Errorf("Expected filename %q, got %q", tt.cleanedName, d.CleanedFilename)
			}
			if d.Reason != tt.reason {
				t.Errorf("Expected reason %q, got %q", tt.reason, d.Reason)
			}
		})
	}
}
