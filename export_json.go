package crseg

import (
	"encoding/json"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Records returns descriptions of every crossroad (and every inner region with multiscale flag)
func (s *Segmentation) Records(multiscale bool) [][]Record {
	ans := [][]Record{}
	for _, c := range s.Crossroads() {
		ans = append(ans, c.Records())
	}
	if multiscale {
		for _, inner := range s.innerRegions {
			ans = append(ans, inner.Records())
		}
	}
	return ans
}

// RecordsAt returns descriptions of crossroad which center is the nearest to given point
func (s *Segmentation) RecordsAt(pt orb.Point, multiscale bool) [][]Record {
	ans := [][]Record{}
	for _, c := range s.CrossroadAt(pt, multiscale) {
		ans = append(ans, c.Records())
	}
	return ans
}

// WriteJSON writes records to given writer
func WriteJSON(w io.Writer, records [][]Record) error {
	encoder := json.NewEncoder(w)
	if err := encoder.Encode(records); err != nil {
		return errors.Wrap(err, "Can't encode records")
	}
	return nil
}

// ExportJSON writes records to the file
func ExportJSON(filename string, records [][]Record) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Can't create file '%s'", filename)
	}
	defer file.Close()
	if err := WriteJSON(file, records); err != nil {
		return errors.Wrapf(err, "Can't write file '%s'", filename)
	}
	return nil
}
