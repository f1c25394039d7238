package storage

import (
	"fmt"
	"path"
	"regexp"
	"time"
)

var pathComponentPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)

// BuildIndexArtifactPath is the dated key a freshly built vector-index
// artifact is published under.
func BuildIndexArtifactPath(indexName string, builtAt time.Time) (string, error) {
	if err := validatePathComponent(indexName, "index name"); err != nil {
		return "", err
	}
	ts := builtAt.UTC()
	return path.Join(
		"indexes",
		fmt.Sprintf("date=%04d-%02d-%02d", ts.Year(), ts.Month(), ts.Day()),
		fmt.Sprintf("%s-%02d%02d%02d.json", indexName, ts.Hour(), ts.Minute(), ts.Second()),
	), nil
}

// LatestIndexArtifactPath is the stable key the serving path pulls from.
// The indexer overwrites it after every successful build.
func LatestIndexArtifactPath(indexName string) (string, error) {
	if err := validatePathComponent(indexName, "index name"); err != nil {
		return "", err
	}
	return path.Join("indexes", "latest", indexName+".json"), nil
}

func validatePathComponent(value, field string) error {
	if !pathComponentPattern.MatchString(value) {
		return fmt.Errorf("invalid %s: %q", field, value)
	}
	return nil
}
