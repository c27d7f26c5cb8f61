package content

import (
	"reflect"

	"ironline-site/internal/model"

	"github.com/invopop/jsonschema"
)

// schemaTypes maps each collection to its record type. List collections
// describe one element.
var schemaTypes = map[string]struct {
	typ  reflect.Type
	list bool
}{
	CollectionSections:      {reflect.TypeOf(model.SectionContent{}), false},
	CollectionNavigation:    {reflect.TypeOf(model.NavigationContent{}), false},
	CollectionGameModes:     {reflect.TypeOf(model.GameMode{}), true},
	CollectionOperators:     {reflect.TypeOf(model.Operator{}), true},
	CollectionMaps:          {reflect.TypeOf(model.Map{}), true},
	CollectionBattlePass:    {reflect.TypeOf(model.BattlePass{}), false},
	CollectionRewards:       {reflect.TypeOf(model.BattlePassReward{}), true},
	CollectionHero:          {reflect.TypeOf(model.HeroContent{}), false},
	CollectionFooter:        {reflect.TypeOf(model.FooterContent{}), false},
	CollectionBottomButtons: {reflect.TypeOf(model.BottomButton{}), true},
	CollectionLaunch:        {reflect.TypeOf(model.LaunchContent{}), false},
}

// Schema returns a JSON schema describing a collection for the admin editor.
func Schema(collection string) (*jsonschema.Schema, bool) {
	entry, ok := schemaTypes[collection]
	if !ok {
		return nil, false
	}

	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	item := reflector.ReflectFromType(entry.typ)
	item.Version = ""
	item.Title = entry.typ.Name()

	if collection == CollectionSections {
		return &jsonschema.Schema{
			Version:              jsonschema.Version,
			Type:                 "object",
			Title:                "Sections",
			Description:          "Section headings keyed by section name.",
			AdditionalProperties: item,
		}, true
	}
	if !entry.list {
		item.Version = jsonschema.Version
		return item, true
	}

	return &jsonschema.Schema{
		Version: jsonschema.Version,
		Type:    "array",
		Title:   collection,
		Items:   item,
	}, true
}
