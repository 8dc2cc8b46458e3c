package orbite

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/logging"
	"github.com/entityscope/orbite/pkg/reconcile"
)

// stateVersion is the current saved-state envelope version.
const stateVersion = 1

// stateEnvelope is the serialized form of a dossier. The envelope id is
// a UUID minted at first save and preserved across saves, so reimported
// files stay traceable to their dossier.
type stateEnvelope struct {
	Version     int                  `json:"version"`
	ID          string               `json:"id"`
	SavedAt     time.Time            `json:"saved_at"`
	Entity      *entity.Entity       `json:"entity"`
	Relations   entity.Relations     `json:"relations"`
	SocialLinks entity.SocialLinks   `json:"social_links"`
	Conflicts   []reconcile.Conflict `json:"conflicts,omitempty"`
}

// validate rejects envelopes that cannot be restored. Checks are
// syntactic: version, organization type, and identifier shapes.
func (s *stateEnvelope) validate() error {
	if s.Version != stateVersion {
		return &errors.ValidationError{Field: "version", Value: s.Version, Message: "unsupported state version"}
	}
	if s.Entity == nil {
		return &errors.ValidationError{Field: "entity", Message: "missing entity"}
	}
	if s.Entity.OrgType != "" && !s.Entity.OrgType.Valid() {
		return &errors.ValidationError{Field: "org_type", Value: s.Entity.OrgType.String(), Message: "unknown organization type"}
	}
	if s.Entity.QID != "" && !entity.ValidQID(s.Entity.QID) {
		return &errors.ValidationError{Field: "qid", Value: s.Entity.QID, Message: "not a Wikidata id"}
	}
	if s.Entity.ParentOrgQID != "" && !entity.ValidQID(s.Entity.ParentOrgQID) {
		return &errors.ValidationError{Field: "parent_org_qid", Value: s.Entity.ParentOrgQID, Message: "not a Wikidata id"}
	}
	for _, rel := range s.Relations {
		if rel.ID == "" {
			return &errors.ValidationError{Field: "relations", Message: "relation without local id"}
		}
		if rel.SchemaType != "" && !rel.SchemaType.Valid() {
			return &errors.ValidationError{Field: "schema_type", Value: rel.SchemaType.String(), Message: "unknown relation type"}
		}
	}
	return nil
}

// snapshot captures the current state as an envelope.
func (d *Dossier) snapshot() stateEnvelope {
	d.mu.RLock()
	defer d.mu.RUnlock()
	conflicts := make([]reconcile.Conflict, len(d.conflicts))
	copy(conflicts, d.conflicts)
	return stateEnvelope{
		Version:     stateVersion,
		ID:          d.stateID,
		SavedAt:     time.Now().UTC(),
		Entity:      d.entity.Clone(),
		Relations:   d.relations.Clone(),
		SocialLinks: d.links.Clone(),
		Conflicts:   conflicts,
	}
}

// restore swaps the dossier state for a validated envelope.
func (d *Dossier) restore(env stateEnvelope) {
	links := env.SocialLinks
	if links == nil {
		links = entity.NewSocialLinks()
	} else {
		// Imported files may predate a network slot; backfill so every
		// fixed slot exists.
		for _, n := range entity.Networks() {
			if _, ok := links[n]; !ok {
				links[n] = ""
			}
		}
	}
	if env.Entity.OrgType == "" {
		env.Entity.OrgType = entity.OrgTypeOrganization
	}

	d.mu.Lock()
	d.entity = env.Entity
	d.relations = env.Relations
	d.links = links
	d.conflicts = env.Conflicts
	d.stateID = env.ID
	d.revision++
	rev := d.revision
	d.mu.Unlock()

	d.hooks.fireUpdated(rev)
}

// StateFile returns the path of the working dossier file.
func (d *Dossier) StateFile() string {
	return d.statePath
}

// Export writes the dossier state to w as a versioned JSON envelope.
func (d *Dossier) Export(w io.Writer) error {
	d.ensureStateID()
	env := d.snapshot()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return errors.WrapState("", err)
	}
	return nil
}

// Import reads a state envelope from r and replaces the dossier state
// with it. A malformed or invalid envelope reports a StateError and
// leaves the in-memory state untouched.
func (d *Dossier) Import(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WrapState("", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var env stateEnvelope
	if err := dec.Decode(&env); err != nil {
		return errors.NewStateError("", "not a dossier state file", err)
	}
	if err := env.validate(); err != nil {
		return errors.NewStateError("", "invalid dossier state", err)
	}

	d.restore(env)
	logging.Info().Str("state_id", env.ID).Msg("dossier state imported")
	return nil
}

// Save writes the dossier state to the working file. The write is
// atomic: a temp file in the same directory is renamed over the target.
func (d *Dossier) Save() error {
	d.ensureStateID()
	env := d.snapshot()
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return errors.WrapState(d.statePath, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(d.statePath)
	tmp, err := os.CreateTemp(dir, ".orbite-*.json")
	if err != nil {
		return errors.WrapIO("create", d.statePath, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("write", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmpName, err)
	}
	if err := os.Rename(tmpName, d.statePath); err != nil {
		return errors.WrapIO("write", d.statePath, err)
	}

	logging.Debug().Str("path", d.statePath).Msg("dossier state saved")
	return nil
}

// Load replaces the dossier state with the working file's contents.
// A missing file is reported as ErrNotFound; a malformed one as a
// StateError, leaving memory untouched either way.
func (d *Dossier) Load() error {
	f, err := os.Open(d.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &errors.NotFoundError{Resource: "state file", ID: d.statePath}
		}
		return errors.WrapIO("read", d.statePath, err)
	}
	defer f.Close()

	if err := d.Import(f); err != nil {
		var se *errors.StateError
		if errors.As(err, &se) {
			se.Path = d.statePath
		}
		return err
	}
	return nil
}

// ensureStateID mints the envelope UUID on first save or export.
func (d *Dossier) ensureStateID() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stateID == "" {
		d.stateID = uuid.NewString()
	}
}
