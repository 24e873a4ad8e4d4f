package dataset

import (
	"strings"

	apperrors "bikeshare/internal/errors"
)

// City identifies one of the supported datasets
type City string

const (
	Chicago     City = "chicago"
	NewYorkCity City = "new york city"
	Washington  City = "washington"
)

// Cities lists the supported datasets in prompt order
var Cities = []City{Chicago, NewYorkCity, Washington}

var cityFiles = map[City]string{
	Chicago:     "chicago",
	NewYorkCity: "new_york_city",
	Washington:  "washington",
}

// ParseCity matches a city name case-insensitively after trimming.
// Underscored file-style names are accepted as well.
func ParseCity(name string) (City, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "_", " ")

	city := City(normalized)
	if _, ok := cityFiles[city]; !ok {
		return "", apperrors.NewDatasetNotFoundError(name, nil)
	}
	return city, nil
}

// BaseName returns the dataset file name without extension
func (c City) BaseName() string {
	return cityFiles[c]
}

// String returns the display name
func (c City) String() string {
	return string(c)
}
