package survey

// CategoryMap partitions the ordered question keys into the schema's fixed
// category slices and carries the reverse lookup. Built once per dataset.
type CategoryMap struct {
	order     []string
	questions map[string][]string
	category  map[string]string
}

// BuildCategoryMap slices questionKeys by the schema's fixed index ranges.
// When the dataset has fewer questions than the schema expects, later
// categories come out short or empty; that is left to the caller to audit
// against the schema version, not treated as an error here.
func BuildCategoryMap(questionKeys []string, schema *Schema) *CategoryMap {
	cm := &CategoryMap{
		order:     make([]string, 0, len(schema.Categories)),
		questions: make(map[string][]string, len(schema.Categories)),
		category:  make(map[string]string, len(questionKeys)),
	}

	start := 0
	for _, cat := range schema.Categories {
		end := start + cat.Size

		lo := min(start, len(questionKeys))
		hi := min(end, len(questionKeys))

		keys := make([]string, hi-lo)
		copy(keys, questionKeys[lo:hi])

		cm.order = append(cm.order, cat.Name)
		cm.questions[cat.Name] = keys
		for _, k := range keys {
			cm.category[k] = cat.Name
		}

		start = end
	}

	return cm
}

// Order returns the category names in schema order.
func (cm *CategoryMap) Order() []string {
	return cm.order
}

// Questions returns the ordered normalized keys of one category.
func (cm *CategoryMap) Questions(category string) []string {
	return cm.questions[category]
}

// Category returns the owning category of a normalized question key.
func (cm *CategoryMap) Category(key string) (string, bool) {
	cat, ok := cm.category[key]
	return cat, ok
}
