package types

// Annotation holds the COCO-style numeric arrays for one person: a
// visibility value per canonical keypoint slot (0 unlabeled, 2 labeled
// and visible) and interleaved x,y coordinates, two per slot.
type Annotation struct {
	V  []int `json:"v"`
	XY []int `json:"xy"`
}

// ExportRecord is the export form consumed by external reporting and
// inspection tooling. It is produced on demand and never persisted by
// the annotation core itself.
type ExportRecord struct {
	ImageAssetPath string     `json:"imageAssetPath"`
	Annotation     Annotation `json:"annotation"`
}
