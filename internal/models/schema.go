package models

// FieldDescriptor is a static description of one serialized field, enough for
// the documentation surface to generate a schema without inspecting handlers.
type FieldDescriptor struct {
	Name      string
	Type      string
	ReadOnly  bool
	Required  bool
	Nullable  bool
	MaxLength int
	Enum      []string
}

// QueryParam describes one list-endpoint query parameter.
type QueryParam struct {
	Name        string
	Type        string
	Description string
}

func statusEnum() []string {
	values := make([]string, len(StatusChoices))
	for i, s := range StatusChoices {
		values[i] = string(s)
	}
	return values
}

// ChargePointFields describes the public charge point representation.
func ChargePointFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "id", Type: "integer", ReadOnly: true},
		{Name: "name", Type: "string", Required: true, MaxLength: 32},
		{Name: "status", Type: "string", Enum: statusEnum()},
		{Name: "created_at", Type: "string", ReadOnly: true},
		{Name: "connectors", Type: "array", ReadOnly: true},
	}
}

// ConnectorFields describes the nested connector projection.
func ConnectorFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "id", Type: "integer", ReadOnly: true},
		{Name: "evse_number", Type: "string", ReadOnly: true, MaxLength: 32},
		{Name: "deleted_at", Type: "string", ReadOnly: true, Nullable: true},
	}
}

// ListParams describes the query parameters accepted by the list operation.
func ListParams() []QueryParam {
	return []QueryParam{
		{Name: "status", Type: "string", Description: "Filter by status (ready|charging|waiting|error)"},
		{Name: "search", Type: "string", Description: "Case-insensitive name substring match"},
		{Name: "ordering", Type: "string", Description: "Order by name or created_at, '-' prefix for descending"},
		{Name: "page", Type: "integer", Description: "Page number, fixed page size of 10"},
	}
}
