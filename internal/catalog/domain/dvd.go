package domain

import "fmt"

// DVD is a reservable item with a running time in minutes.
type DVD struct {
	itemBase
	reservation
	duration int
}

// NewDVD validates attrs and builds a DVD with the given ID.
func NewDVD(id string, attrs ItemAttrs) (*DVD, error) {
	if err := validateItem(ItemTypeDVD, id, attrs); err != nil {
		return nil, err
	}
	return &DVD{
		itemBase: newItemBase(ItemTypeDVD, id, attrs),
		duration: attrs.Duration,
	}, nil
}

// Duration returns the running time in minutes.
func (d *DVD) Duration() int {
	return d.duration
}

// SetDuration replaces the running time after validating it.
func (d *DVD) SetDuration(duration int) error {
	if err := validateDuration(duration); err != nil {
		return err
	}
	d.duration = duration
	return nil
}

// Attrs returns every field of the DVD.
func (d *DVD) Attrs() ItemAttrs {
	attrs := d.attrs()
	attrs.Duration = d.duration
	return attrs
}

// Display renders the DVD record.
func (d *DVD) Display() string {
	return d.display(fmt.Sprintf("Duration: %d minutes", d.duration), d.reservedBy)
}

func (d *DVD) clone() Item {
	c := *d
	return &c
}
