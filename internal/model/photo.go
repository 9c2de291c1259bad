package model

// Photo is a raw profile image on its way to object storage.
type Photo struct {
	Filename string
	Content  []byte

	UserID string
}

func (p Photo) GetFilename() string {
	return p.Filename
}

func (p Photo) GetContent() []byte {
	return p.Content
}

func (p Photo) GetParent() string {
	return p.UserID
}
