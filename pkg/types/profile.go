package types

type Profile struct {
	ID               string         `json:"id" validate:"required"`
	Name             string         `json:"name" validate:"required,nodigits"`
	ProfileThumbnail string         `json:"profileThumbnail"`
	ProfileFullImage string         `json:"profileFullImage"`
	AboutMe          string         `json:"aboutMe"`
	Available        bool           `json:"available"`
	Breed            string         `json:"breed" validate:"nodigits"`
	HeightCm         *float64       `json:"heightCm,omitempty" validate:"omitempty,gte=0"`
	WeightKg         *float64       `json:"weightKg,omitempty" validate:"omitempty,gte=0"`
	HarnessSize      string         `json:"harnessSize"`
	Highlights       string         `json:"highlights"`
	Review           Review         `json:"review"`
	IndoorServices   string         `json:"indoorServices"`
	OutdoorServices  string         `json:"outdoorServices"`
	SpecialGallery   SpecialGallery `json:"specialGallery"`
	Gallery          []string       `json:"gallery"`
}

type Review struct {
	Link    string         `json:"link"`
	Samples []ReviewSample `json:"samples"`
}

type ReviewSample struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type SpecialGallery struct {
	Description string   `json:"description"`
	Gallery     []string `json:"gallery"`
}

// ImageDeletions names the media an editor removed from a profile. The two
// boolean fields clear a single-image field; the slices list gallery files.
type ImageDeletions struct {
	ProfileThumbnail bool     `json:"profileThumbnail,omitempty"`
	ProfileFullImage bool     `json:"profileFullImage,omitempty"`
	Gallery          []string `json:"gallery,omitempty"`
	SpecialGallery   []string `json:"specialGallery,omitempty"`
}

func (d *ImageDeletions) IsEmpty() bool {
	return d == nil || (!d.ProfileThumbnail && !d.ProfileFullImage && len(d.Gallery) == 0 && len(d.SpecialGallery) == 0)
}

// ImageDeletionResult reports which files were removed from storage and which
// profile fields the caller has to clear before saving the profile.
type ImageDeletionResult struct {
	Deleted []string       `json:"deleted"`
	Failed  []string       `json:"failed"`
	Clear   ImageDeletions `json:"clear"`
}

// ApplyImageDeletions clears the fields and gallery entries named in d.
func (p *Profile) ApplyImageDeletions(d *ImageDeletions) {
	if d == nil {
		return
	}

	if d.ProfileThumbnail {
		p.ProfileThumbnail = ""
	}
	if d.ProfileFullImage {
		p.ProfileFullImage = ""
	}

	p.Gallery = without(p.Gallery, d.Gallery)
	p.SpecialGallery.Gallery = without(p.SpecialGallery.Gallery, d.SpecialGallery)
}

// MergeUploads appends newly stored gallery files, skipping names already present.
func (p *Profile) MergeUploads(gallery, specialGallery []string) {
	p.Gallery = union(p.Gallery, gallery)
	p.SpecialGallery.Gallery = union(p.SpecialGallery.Gallery, specialGallery)
}

func without(list, remove []string) []string {
	if len(remove) == 0 {
		return list
	}

	drop := make(map[string]bool, len(remove))
	for _, r := range remove {
		drop[r] = true
	}

	out := make([]string, 0, len(list))
	for _, v := range list {
		if !drop[v] {
			out = append(out, v)
		}
	}
	return out
}

func union(list, add []string) []string {
	seen := make(map[string]bool, len(list)+len(add))
	out := make([]string, 0, len(list)+len(add))
	for _, v := range append(append([]string{}, list...), add...) {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
