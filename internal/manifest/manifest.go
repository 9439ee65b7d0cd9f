package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/csvsweep/csvsweep/internal/domain"
)

// Manifest loading and validation errors.
var (
	// ErrEmptyManifest indicates a manifest file that declares no URLs.
	ErrEmptyManifest = errors.New("manifest contains no URLs")

	// ErrDuplicateResource indicates the same URL appears more than once.
	ErrDuplicateResource = errors.New("manifest contains a duplicate URL")
)

// file is the on-disk YAML shape of a manifest.
type file struct {
	URLs []string `yaml:"urls"`
}

// defaultURLs is the built-in resource set, a collection of small
// public CSV files hosted at people.sc.fsu.edu.
var defaultURLs = []string{
	"https://people.sc.fsu.edu/~jburkardt/data/csv/addresses.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/airtravel.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/biostats.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/cities.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/crash_catalonia.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/deniro.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/example.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/ford_escort.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/faithful.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/freshman_kgs.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/freshman_lbs.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/grades.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/homes.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/hooke.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/hurricanes.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/hw_200.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/hw_25000.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/lead_shot.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/letter_frequency.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/mlb_players.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/mlb_teams_2012.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/news_decline.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/nile.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/oscar_age_female.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/oscar_age_male.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/snakes_count_10.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/snakes_count_100.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/snakes_count_1000.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/snakes_count_10000.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/tally_cab.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/trees.csv",
	"https://people.sc.fsu.edu/~jburkardt/data/csv/zillow.csv",
}

// Default returns the built-in resource set. The slice is freshly
// allocated on each call, so callers may modify it freely.
func Default() []domain.Resource {
	resources := make([]domain.Resource, 0, len(defaultURLs))
	for _, rawURL := range defaultURLs {
		// The built-in URLs are statically valid, so NewResource
		// cannot fail here.
		res, err := domain.NewResource(rawURL)
		if err != nil {
			panic(fmt.Sprintf("invalid built-in URL %q: %v", rawURL, err))
		}
		resources = append(resources, res)
	}
	return resources
}

// Load reads a YAML manifest from the given path and returns its
// resources in declaration order. Every URL is validated, the list
// must be non-empty, and duplicates are rejected.
func Load(path string) ([]domain.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse decodes a YAML manifest from r. See Load for the validation
// rules applied.
func Parse(r io.Reader) ([]domain.Resource, error) {
	var mf file
	if err := yaml.NewDecoder(r).Decode(&mf); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	if len(mf.URLs) == 0 {
		return nil, ErrEmptyManifest
	}

	seen := make(map[string]bool, len(mf.URLs))
	resources := make([]domain.Resource, 0, len(mf.URLs))
	for i, rawURL := range mf.URLs {
		res, err := domain.NewResource(rawURL)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d (%q): %w", i, rawURL, err)
		}
		if seen[res.URL] {
			return nil, fmt.Errorf("manifest entry %d (%q): %w", i, rawURL, ErrDuplicateResource)
		}
		seen[res.URL] = true
		resources = append(resources, res)
	}

	return resources, nil
}
