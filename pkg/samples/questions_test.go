package samples

import "testing"

func TestForCategory_AllCategoriesNonEmpty(t *testing.T) {
	for _, name := range Categories() {
		questions := ForCategory(name)
		if len(questions) == 0 {
			t.Errorf("Category %q has no sample questions", name)
		}

		for _, q := range questions {
			if q == "" {
				t.Errorf("Category %q contains an empty question", name)
			}
		}
	}
}

func TestForCategory_Unknown(t *testing.T) {
	if ForCategory("marketing") != nil {
		t.Error("Expected nil for unknown category")
	}
}

func TestAll_CoversEveryCategory(t *testing.T) {
	all := All()

	if len(all) != len(Categories()) {
		t.Errorf("Expected %d categories, got %d", len(Categories()), len(all))
	}
}
