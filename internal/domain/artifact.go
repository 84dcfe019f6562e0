package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoArtifacts is returned when a directory holds no artifacts to seed from
var ErrNoArtifacts = errors.New("no artifacts found")

// ArtifactName is a file named {serial}_{title}{ext}
type ArtifactName struct {
	Serial Serial
	Title  string
	Ext    string
}

// String renders the file name
func (a ArtifactName) String() string {
	return FormatArtifactName(a.Serial.String(), a.Title, a.Ext)
}

// ParseArtifactName splits a file name into serial, title and extension.
// The title is everything after the first underscore.
func ParseArtifactName(filename, ext string) (ArtifactName, error) {
	if !strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
		return ArtifactName{}, fmt.Errorf("%s does not have extension %s", filename, ext)
	}
	stem := filename[:len(filename)-len(ext)]

	serialPart, title, ok := strings.Cut(stem, "_")
	if !ok || title == "" {
		return ArtifactName{}, fmt.Errorf("%s is not named {serial}_{title}%s", filename, ext)
	}

	serial, err := ParseSerial(serialPart)
	if err != nil {
		return ArtifactName{}, err
	}

	return ArtifactName{Serial: serial, Title: title, Ext: filename[len(stem):]}, nil
}

// FormatArtifactName creates an artifact file name. ext includes the dot.
func FormatArtifactName(serial, title, ext string) string {
	return fmt.Sprintf("%s_%s%s", serial, title, ext)
}

// FormatFolderName creates a project folder name from a base serial and name
func FormatFolderName(serial, name string) string {
	return fmt.Sprintf("%s_%s", serial, name)
}

// LatestArtifact returns the artifact with the highest serial among names.
// Names that do not parse as artifacts are ignored.
func LatestArtifact(names []string, ext string) (ArtifactName, error) {
	var latest ArtifactName
	found := false

	for _, name := range names {
		artifact, err := ParseArtifactName(name, ext)
		if err != nil {
			continue
		}
		if !found || artifact.Serial.Compare(latest.Serial) > 0 {
			latest = artifact
			found = true
		}
	}

	if !found {
		return ArtifactName{}, ErrNoArtifacts
	}
	return latest, nil
}

// SequentialName names a file after a counter value, e.g. 1043.jpg
func SequentialName(n int, ext string) string {
	return fmt.Sprintf("%d%s", n, ext)
}
