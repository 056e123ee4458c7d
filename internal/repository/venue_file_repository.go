package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iliyamo/venue-seatmap/internal/model"
)

// ErrInvalidVenueID is returned for ids that cannot name a file.
var ErrInvalidVenueID = errors.New("invalid venue id")

// VenueFileRepo keeps venue documents as <dir>/<id>.json.  It is used when
// no database is configured.
type VenueFileRepo struct {
	dir string
}

func NewVenueFileRepo(dir string) *VenueFileRepo {
	return &VenueFileRepo{dir: dir}
}

func (r *VenueFileRepo) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVenueID, id)
	}
	return filepath.Join(r.dir, id+".json"), nil
}

// Upsert writes the document through a temp file so readers never see a
// partial venue.
func (r *VenueFileRepo) Upsert(_ context.Context, id, _ string, _ int, doc []byte) error {
	p, err := r.path(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(r.dir, "."+id+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (r *VenueFileRepo) GetDocument(_ context.Context, id string) ([]byte, error) {
	p, err := r.path(id)
	if err != nil {
		return nil, err
	}
	doc, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrVenueNotFound
	}
	return doc, err
}

// List decodes every document in the directory.  Files that do not decode
// are skipped.
func (r *VenueFileRepo) List(ctx context.Context) ([]VenueSummary, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []VenueSummary{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := []VenueSummary{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		doc, err := r.GetDocument(ctx, id)
		if err != nil {
			continue
		}
		v, err := model.DecodeVenue(doc)
		if err != nil {
			continue
		}
		s := VenueSummary{ID: id, Name: v.Name, SeatCount: v.SeatCount()}
		if info, err := e.Info(); err == nil {
			s.UpdatedAt = info.ModTime().UTC()
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *VenueFileRepo) Delete(_ context.Context, id string) error {
	p, err := r.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil
}
