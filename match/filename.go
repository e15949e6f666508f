// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/storage"
	"github.com/xrash/smetrics"
)

// Scanner and mail-client artifacts that carry no identity: capture
// prefixes, copy markers, and bare digit runs.
var (
	capturePrefixRe = regexp.MustCompile(`^(image|img|scanned|scan|dsc|pxl|screenshot|copy of|copy)[\s_\-]*`)
	digitRunRe      = regexp.MustCompile(`\d+`)
	separatorRe     = regexp.MustCompile(`[\s_\-.]+`)
)

// NormalizeFilename reduces a filename to its identity-bearing fingerprint.
// The extension, capture-device prefixes, copy markers, digit runs, and
// separator noise are all stripped; what remains is lowercased words.
func NormalizeFilename(filename string) string {
	name := strings.ToLower(filepath.Base(filename))
	name = strings.TrimSuffix(name, filepath.Ext(name))

	// "Copy of Copy of lease.pdf" needs repeated stripping.
	for {
		stripped := capturePrefixRe.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}

	name = digitRunRe.ReplaceAllString(name, "")
	name = separatorRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// FilenameSimilarity computes a 0..1 edit-distance ratio between two
// normalized filenames. Both empty means indistinguishable, which counts
// as a perfect match.
func FilenameSimilarity(a, b string) float32 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	distance := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 1 - float32(distance)/float32(len(a)+len(b))
}

// FilenameMatcher is the cheapest cascade tier. It compares normalized
// filename fingerprints with an edit-distance ratio and needs no AI service.
type FilenameMatcher struct {
	docs      storage.DocumentRepository
	threshold float32
}

var _ Matcher = (*FilenameMatcher)(nil)

// NewFilenameMatcher creates the filename tier.
func NewFilenameMatcher(docs storage.DocumentRepository, opts ...Option) *FilenameMatcher {
	m := &FilenameMatcher{docs: docs, threshold: DefaultFilenameThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *FilenameMatcher) Tier() core.Tier        { return core.TierFilename }
func (m *FilenameMatcher) Threshold() float32     { return m.threshold }
func (m *FilenameMatcher) setThreshold(t float32) { m.threshold = t }

func (m *FilenameMatcher) BestMatch(ctx context.Context, doc *core.Document) (*core.MatchCandidate, *core.MatchCandidate, error) {
	accepted, err := m.docs.GetDocumentsByStatus(ctx, core.StatusAccepted)
	if err != nil {
		return nil, nil, err
	}

	name := doc.NormalizedName
	if name == "" {
		name = NormalizeFilename(doc.Filename)
	}

	var top topTwo
	for _, candidate := range accepted {
		if candidate.Id == doc.Id {
			continue
		}
		other := candidate.NormalizedName
		if other == "" {
			other = NormalizeFilename(candidate.Filename)
		}
		top.observe(candidate.Id, FilenameSimilarity(name, other))
	}
	return top.best, top.runnerUp, nil
}
