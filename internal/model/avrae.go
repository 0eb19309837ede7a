// Package model defines the data records exchanged between the Avrae API
// adapter, the comparison engine and the UI layers.
package model

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates an API response that is missing a required
// field or carries a field of an unexpected type. Construction of entity
// records is total: any such response aborts parsing of the whole tree.
var ErrMalformedResponse = errors.New("malformed avrae response")

// Alias is a workshop alias, possibly carrying nested subcommand aliases.
// An alias with no subcommands is a leaf.
type Alias struct {
	Name          string
	Code          string
	Versions      []CodeVersion
	Docs          string
	Entitlements  []string
	CollectionID  string
	ID            string
	SubcommandIDs []string
	ParentID      string
	Subcommands   []Alias
}

// Snippet is a workshop snippet. Snippets never nest.
type Snippet struct {
	Name         string
	Code         string
	Versions     []CodeVersion
	Docs         string
	Entitlements []string
	CollectionID string
	ID           string
}

// Collection is a workshop collection owning aliases and snippets. It
// corresponds 1:1 with a top-level directory in the local repository named
// after the collection.
type Collection struct {
	Name                string
	Description         string
	Image               string
	Owner               string
	AliasIDs            []string
	SnippetIDs          []string
	PublishState        string
	NumSubscribers      int
	NumGuildSubscribers int
	LastEdited          string
	CreatedAt           string
	Tags                []string
	ID                  string
	Aliases             []Alias
	Snippets            []Snippet
}

// Gvar is a global variable. Gvars have no owning collection; their local
// path comes from the gvars mapping config.
type Gvar struct {
	Owner     string
	Key       string
	OwnerName string
	Value     string
	Editors   []string
}

// CodeVersion is one historical revision of an alias or snippet's code.
type CodeVersion struct {
	Version   int
	Content   string
	CreatedAt string
	IsCurrent bool
}

// WorkshopItem is a workshop resource whose code and docs can be pushed back
// to Avrae. Alias and Snippet satisfy it.
type WorkshopItem interface {
	// ItemID returns the resource identifier used in API paths.
	ItemID() string
	// ItemName returns the display name of the resource.
	ItemName() string
	// CurrentCode returns the active remote code content.
	CurrentCode() string
	// CurrentDocs returns the remote docs content.
	CurrentDocs() string
	// OwningCollectionID returns the id of the containing collection.
	OwningCollectionID() string
	// ResourceType returns the API path segment, "alias" or "snippet".
	ResourceType() string
}

func (a *Alias) ItemID() string             { return a.ID }
func (a *Alias) ItemName() string           { return a.Name }
func (a *Alias) CurrentCode() string        { return a.Code }
func (a *Alias) CurrentDocs() string        { return a.Docs }
func (a *Alias) OwningCollectionID() string { return a.CollectionID }
func (a *Alias) ResourceType() string       { return "alias" }

func (s *Snippet) ItemID() string             { return s.ID }
func (s *Snippet) ItemName() string           { return s.Name }
func (s *Snippet) CurrentCode() string        { return s.Code }
func (s *Snippet) CurrentDocs() string        { return s.Docs }
func (s *Snippet) OwningCollectionID() string { return s.CollectionID }
func (s *Snippet) ResourceType() string       { return "snippet" }

// AliasFromData builds an Alias from a decoded API response object,
// recursing into nested subcommands and preserving their order.
func AliasFromData(data map[string]any) (Alias, error) {
	alias := Alias{}

	var err error
	if alias.Name, err = stringField(data, "alias", "name"); err != nil {
		return Alias{}, err
	}

	if alias.Code, err = stringField(data, "alias", "code"); err != nil {
		return Alias{}, err
	}

	if alias.CollectionID, err = stringField(data, "alias", "collection_id"); err != nil {
		return Alias{}, err
	}

	if alias.ID, err = stringField(data, "alias", "_id"); err != nil {
		return Alias{}, err
	}

	if alias.Versions, err = optionalVersions(data); err != nil {
		return Alias{}, err
	}

	alias.Docs = optionalString(data, "docs")
	alias.Entitlements = optionalStringList(data, "entitlements")
	alias.SubcommandIDs = optionalStringList(data, "subcommand_ids")
	alias.ParentID = optionalString(data, "parent_id")

	rawSubcommands, err := optionalObjectList(data, "alias", "subcommands")
	if err != nil {
		return Alias{}, err
	}

	for _, rawSubcommand := range rawSubcommands {
		subcommand, err := AliasFromData(rawSubcommand)
		if err != nil {
			return Alias{}, err
		}

		alias.Subcommands = append(alias.Subcommands, subcommand)
	}

	return alias, nil
}

// SnippetFromData builds a Snippet from a decoded API response object.
func SnippetFromData(data map[string]any) (Snippet, error) {
	snippet := Snippet{}

	var err error
	if snippet.Name, err = stringField(data, "snippet", "name"); err != nil {
		return Snippet{}, err
	}

	if snippet.Code, err = stringField(data, "snippet", "code"); err != nil {
		return Snippet{}, err
	}

	if snippet.CollectionID, err = stringField(data, "snippet", "collection_id"); err != nil {
		return Snippet{}, err
	}

	if snippet.ID, err = stringField(data, "snippet", "_id"); err != nil {
		return Snippet{}, err
	}

	if snippet.Versions, err = optionalVersions(data); err != nil {
		return Snippet{}, err
	}

	snippet.Docs = optionalString(data, "docs")
	snippet.Entitlements = optionalStringList(data, "entitlements")

	return snippet, nil
}

// CollectionFromData builds a Collection, including every owned alias
// (recursively) and snippet, from a decoded API response object.
func CollectionFromData(data map[string]any) (Collection, error) {
	collection := Collection{}

	var err error
	if collection.Name, err = stringField(data, "collection", "name"); err != nil {
		return Collection{}, err
	}

	if collection.Description, err = stringField(data, "collection", "description"); err != nil {
		return Collection{}, err
	}

	if collection.Image, err = nullableStringField(data, "collection", "image"); err != nil {
		return Collection{}, err
	}

	if collection.Owner, err = stringField(data, "collection", "owner"); err != nil {
		return Collection{}, err
	}

	if collection.AliasIDs, err = stringListField(data, "collection", "alias_ids"); err != nil {
		return Collection{}, err
	}

	if collection.SnippetIDs, err = stringListField(data, "collection", "snippet_ids"); err != nil {
		return Collection{}, err
	}

	if collection.PublishState, err = stringField(data, "collection", "publish_state"); err != nil {
		return Collection{}, err
	}

	if collection.NumSubscribers, err = intField(data, "collection", "num_subscribers"); err != nil {
		return Collection{}, err
	}

	if collection.NumGuildSubscribers, err = intField(data, "collection", "num_guild_subscribers"); err != nil {
		return Collection{}, err
	}

	if collection.LastEdited, err = stringField(data, "collection", "last_edited"); err != nil {
		return Collection{}, err
	}

	if collection.CreatedAt, err = stringField(data, "collection", "created_at"); err != nil {
		return Collection{}, err
	}

	if collection.Tags, err = stringListField(data, "collection", "tags"); err != nil {
		return Collection{}, err
	}

	if collection.ID, err = stringField(data, "collection", "_id"); err != nil {
		return Collection{}, err
	}

	rawAliases, err := objectListField(data, "collection", "aliases")
	if err != nil {
		return Collection{}, err
	}

	for _, rawAlias := range rawAliases {
		alias, err := AliasFromData(rawAlias)
		if err != nil {
			return Collection{}, err
		}

		collection.Aliases = append(collection.Aliases, alias)
	}

	rawSnippets, err := objectListField(data, "collection", "snippets")
	if err != nil {
		return Collection{}, err
	}

	for _, rawSnippet := range rawSnippets {
		snippet, err := SnippetFromData(rawSnippet)
		if err != nil {
			return Collection{}, err
		}

		collection.Snippets = append(collection.Snippets, snippet)
	}

	return collection, nil
}

// GvarFromData builds a single Gvar from a decoded API response object.
func GvarFromData(data map[string]any) (Gvar, error) {
	gvar := Gvar{}

	var err error
	if gvar.Owner, err = stringField(data, "gvar", "owner"); err != nil {
		return Gvar{}, err
	}

	if gvar.Key, err = stringField(data, "gvar", "key"); err != nil {
		return Gvar{}, err
	}

	if gvar.OwnerName, err = stringField(data, "gvar", "owner_name"); err != nil {
		return Gvar{}, err
	}

	if gvar.Value, err = stringField(data, "gvar", "value"); err != nil {
		return Gvar{}, err
	}

	gvar.Editors = optionalStringList(data, "editors")

	return gvar, nil
}

// GvarsFromData builds the full gvar list from the customizations response,
// which groups gvars into "owned" and "editable". Owned gvars come first.
func GvarsFromData(data map[string]any) ([]Gvar, error) {
	var gvars []Gvar

	for _, group := range []string{"owned", "editable"} {
		rawGvars, err := objectListField(data, "gvars", group)
		if err != nil {
			return nil, err
		}

		for _, rawGvar := range rawGvars {
			gvar, err := GvarFromData(rawGvar)
			if err != nil {
				return nil, err
			}

			gvars = append(gvars, gvar)
		}
	}

	return gvars, nil
}

// CodeVersionFromData builds a CodeVersion from a decoded API response object.
func CodeVersionFromData(data map[string]any) (CodeVersion, error) {
	version := CodeVersion{}

	var err error
	if version.Version, err = intField(data, "code version", "version"); err != nil {
		return CodeVersion{}, err
	}

	if version.Content, err = stringField(data, "code version", "content"); err != nil {
		return CodeVersion{}, err
	}

	if version.CreatedAt, err = stringField(data, "code version", "created_at"); err != nil {
		return CodeVersion{}, err
	}

	if version.IsCurrent, err = boolField(data, "code version", "is_current"); err != nil {
		return CodeVersion{}, err
	}

	return version, nil
}

func missingField(kind, field string) error {
	return fmt.Errorf("%w: %s is missing required field %q", ErrMalformedResponse, kind, field)
}

func wrongType(kind, field string, raw any) error {
	return fmt.Errorf("%w: %s field %q has unexpected type %T", ErrMalformedResponse, kind, field, raw)
}

func stringField(data map[string]any, kind, field string) (string, error) {
	raw, ok := data[field]
	if !ok {
		return "", missingField(kind, field)
	}

	value, ok := raw.(string)
	if !ok {
		return "", wrongType(kind, field, raw)
	}

	return value, nil
}

// nullableStringField requires the key to be present but tolerates an
// explicit null, which decodes as the empty string.
func nullableStringField(data map[string]any, kind, field string) (string, error) {
	raw, ok := data[field]
	if !ok {
		return "", missingField(kind, field)
	}

	if raw == nil {
		return "", nil
	}

	value, ok := raw.(string)
	if !ok {
		return "", wrongType(kind, field, raw)
	}

	return value, nil
}

func intField(data map[string]any, kind, field string) (int, error) {
	raw, ok := data[field]
	if !ok {
		return 0, missingField(kind, field)
	}

	// encoding/json decodes numbers into float64.
	value, ok := raw.(float64)
	if !ok {
		return 0, wrongType(kind, field, raw)
	}

	return int(value), nil
}

func boolField(data map[string]any, kind, field string) (bool, error) {
	raw, ok := data[field]
	if !ok {
		return false, missingField(kind, field)
	}

	value, ok := raw.(bool)
	if !ok {
		return false, wrongType(kind, field, raw)
	}

	return value, nil
}

func stringListField(data map[string]any, kind, field string) ([]string, error) {
	raw, ok := data[field]
	if !ok {
		return nil, missingField(kind, field)
	}

	rawList, ok := raw.([]any)
	if !ok {
		return nil, wrongType(kind, field, raw)
	}

	values := make([]string, 0, len(rawList))

	for _, entry := range rawList {
		value, ok := entry.(string)
		if !ok {
			return nil, wrongType(kind, field, entry)
		}

		values = append(values, value)
	}

	return values, nil
}

func objectListField(data map[string]any, kind, field string) ([]map[string]any, error) {
	raw, ok := data[field]
	if !ok {
		return nil, missingField(kind, field)
	}

	return objectList(kind, field, raw)
}

func optionalObjectList(data map[string]any, kind, field string) ([]map[string]any, error) {
	raw, ok := data[field]
	if !ok || raw == nil {
		return nil, nil
	}

	return objectList(kind, field, raw)
}

func objectList(kind, field string, raw any) ([]map[string]any, error) {
	rawList, ok := raw.([]any)
	if !ok {
		return nil, wrongType(kind, field, raw)
	}

	objects := make([]map[string]any, 0, len(rawList))

	for _, entry := range rawList {
		object, ok := entry.(map[string]any)
		if !ok {
			return nil, wrongType(kind, field, entry)
		}

		objects = append(objects, object)
	}

	return objects, nil
}

func optionalString(data map[string]any, field string) string {
	raw, ok := data[field]
	if !ok || raw == nil {
		return ""
	}

	value, _ := raw.(string)

	return value
}

func optionalStringList(data map[string]any, field string) []string {
	raw, ok := data[field]
	if !ok || raw == nil {
		return nil
	}

	rawList, ok := raw.([]any)
	if !ok {
		return nil
	}

	values := make([]string, 0, len(rawList))

	for _, entry := range rawList {
		if value, ok := entry.(string); ok {
			values = append(values, value)
		}
	}

	return values
}

func optionalVersions(data map[string]any) ([]CodeVersion, error) {
	rawVersions, err := optionalObjectList(data, "versions", "versions")
	if err != nil {
		return nil, err
	}

	var versions []CodeVersion

	for _, rawVersion := range rawVersions {
		version, err := CodeVersionFromData(rawVersion)
		if err != nil {
			return nil, err
		}

		versions = append(versions, version)
	}

	return versions, nil
}
