package evaluation

// Selection keeps chosen symptom labels in the order they were picked.
type Selection struct {
	labels []string
}

// Toggle adds label when absent and removes it otherwise.
func (s *Selection) Toggle(label string) {
	for i, l := range s.labels {
		if l == label {
			s.labels = append(s.labels[:i:i], s.labels[i+1:]...)
			return
		}
	}
	s.labels = append(s.labels, label)
}

func (s Selection) Has(label string) bool {
	for _, l := range s.labels {
		if l == label {
			return true
		}
	}
	return false
}

func (s Selection) Labels() []string {
	return append([]string(nil), s.labels...)
}

func (s Selection) Len() int { return len(s.labels) }

func (s *Selection) Reset() { s.labels = nil }
