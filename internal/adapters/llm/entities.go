package llm

// Image is a generated illustration, either inline bytes or a remote URL.
type Image struct {
	Data []byte
	URL  string
}

func (i Image) Empty() bool {
	return len(i.Data) == 0 && i.URL == ""
}
