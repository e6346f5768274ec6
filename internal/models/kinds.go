package models

// Kind describes one record-array document: the entity type's name as used by
// the CLI, its singular form for messages, the data file holding it, and the
// factory producing a fully-populated default record for a given ID.
type Kind struct {
	Name     string
	Singular string
	File     string
	New      func(id int) Record
}

// Kinds lists every record-array document kind, in data-file order.
var Kinds = []Kind{
	{Name: "actors", Singular: "actor", File: "Actors.json", New: DefaultActor},
	{Name: "classes", Singular: "class", File: "Classes.json", New: DefaultClass},
	{Name: "skills", Singular: "skill", File: "Skills.json", New: DefaultSkill},
	{Name: "items", Singular: "item", File: "Items.json", New: DefaultItem},
	{Name: "weapons", Singular: "weapon", File: "Weapons.json", New: DefaultWeapon},
	{Name: "armors", Singular: "armor", File: "Armors.json", New: DefaultArmor},
	{Name: "enemies", Singular: "enemy", File: "Enemies.json", New: DefaultEnemy},
	{Name: "troops", Singular: "troop", File: "Troops.json", New: DefaultTroop},
	{Name: "states", Singular: "state", File: "States.json", New: DefaultState},
	{Name: "common-events", Singular: "common event", File: "CommonEvents.json", New: DefaultCommonEvent},
}

// KindByName looks up a kind by its CLI name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// DefaultActor returns a fully-populated default actor record.
func DefaultActor(id int) Record {
	return Record{
		"id":             id,
		"name":           "",
		"nickname":       "",
		"profile":        "",
		"note":           "",
		"classId":        1,
		"initialLevel":   1,
		"maxLevel":       99,
		"characterName":  "",
		"characterIndex": 0,
		"faceName":       "",
		"faceIndex":      0,
		"battlerName":    "",
		"equips":         []any{},
		"traits":         []any{},
	}
}

// DefaultClass returns a fully-populated default class record.
func DefaultClass(id int) Record {
	return Record{
		"id":        id,
		"name":      "",
		"note":      "",
		"expParams": []any{30, 20, 30, 30},
		"params":    []any{},
		"learnings": []any{},
		"traits":    []any{},
	}
}

// DefaultSkill returns a fully-populated default skill record.
func DefaultSkill(id int) Record {
	return Record{
		"id":          id,
		"name":        "",
		"description": "",
		"note":        "",
		"iconIndex":   0,
		"stypeId":     1,
		"scope":       1,
		"occasion":    1,
		"mpCost":      0,
		"tpCost":      0,
		"effects":     []any{},
	}
}

// DefaultItem returns a fully-populated default item record.
func DefaultItem(id int) Record {
	return Record{
		"id":          id,
		"name":        "",
		"description": "",
		"note":        "",
		"iconIndex":   0,
		"itypeId":     1,
		"price":       0,
		"consumable":  true,
		"scope":       7,
		"occasion":    0,
		"effects":     []any{},
	}
}

// DefaultWeapon returns a fully-populated default weapon record.
func DefaultWeapon(id int) Record {
	return Record{
		"id":          id,
		"name":        "",
		"description": "",
		"note":        "",
		"iconIndex":   0,
		"wtypeId":     1,
		"etypeId":     1,
		"price":       0,
		"params":      []any{0, 0, 0, 0, 0, 0, 0, 0},
		"traits":      []any{},
	}
}

// DefaultArmor returns a fully-populated default armor record.
func DefaultArmor(id int) Record {
	return Record{
		"id":          id,
		"name":        "",
		"description": "",
		"note":        "",
		"iconIndex":   0,
		"atypeId":     1,
		"etypeId":     2,
		"price":       0,
		"params":      []any{0, 0, 0, 0, 0, 0, 0, 0},
		"traits":      []any{},
	}
}

// DefaultEnemy returns a fully-populated default enemy record.
func DefaultEnemy(id int) Record {
	return Record{
		"id":          id,
		"name":        "",
		"note":        "",
		"battlerName": "",
		"battlerHue":  0,
		"exp":         0,
		"gold":        0,
		"params":      []any{100, 0, 10, 10, 10, 10, 10, 10},
		"actions":     []any{},
		"dropItems":   []any{},
		"traits":      []any{},
	}
}

// DefaultTroop returns a fully-populated default troop record.
func DefaultTroop(id int) Record {
	return Record{
		"id":      id,
		"name":    "",
		"members": []any{},
		"pages":   []any{},
	}
}

// DefaultState returns a fully-populated default state record.
func DefaultState(id int) Record {
	return Record{
		"id":                id,
		"name":              "",
		"note":              "",
		"iconIndex":         0,
		"restriction":       0,
		"priority":          50,
		"motion":            0,
		"overlay":           0,
		"removeAtBattleEnd": false,
		"minTurns":          1,
		"maxTurns":          1,
		"traits":            []any{},
	}
}

// DefaultCommonEvent returns a fully-populated default common event record.
func DefaultCommonEvent(id int) Record {
	return Record{
		"id":       id,
		"name":     "",
		"trigger":  0,
		"switchId": 1,
		"list":     []any{map[string]any{"code": 0, "indent": 0, "parameters": []any{}}},
	}
}
