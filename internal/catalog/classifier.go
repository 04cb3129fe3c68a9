package catalog

// StandardClassifier classifies aggregate entries by the directory shape
// of each file's root-relative path. It is the default Classifier; the
// coordinator accepts any implementation.
type StandardClassifier struct{}

// NewStandardClassifier returns the directory-shape classifier.
func NewStandardClassifier() *StandardClassifier {
	return &StandardClassifier{}
}

// Classify builds a catalog from the entries. It takes ownership of each
// entry: the Files slice is cleared as records are absorbed, so entries
// must not be reused after this call.
func (sc *StandardClassifier) Classify(entries []*Entry) *Catalog {
	cat := NewCatalog()

	for _, entry := range entries {
		versions, ok := cat.components[entry.Name]
		if !ok {
			versions = make(map[string]*Component)
			cat.components[entry.Name] = versions
		}

		comp, ok := versions[entry.Version]
		if !ok {
			comp = &Component{
				Name:     entry.Name,
				Version:  entry.Version,
				RootPath: entry.RootPath,
				Metadata: entry.Metadata,
				Modules:  make(map[string]*Module),
			}
			versions[entry.Version] = comp
		}

		for _, rec := range entry.Files {
			module, family, ok := classifyRecord(rec)
			if !ok {
				continue
			}
			comp.add(module, family, rec)
			cat.byPath[rec.Path] = rec
		}
		entry.Files = nil
	}

	return cat
}
