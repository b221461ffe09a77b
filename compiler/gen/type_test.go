package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crud/compiler/load"
)

func TestBuildTypes(t *testing.T) {
	types, err := BuildTypes([]*load.Record{{
		Name: "UserProfile",
		Fields: []load.Field{
			{Name: "ID", Type: "int64", PK: true, Auto: true},
			{Name: "DisplayName", Type: "string"},
			{Name: "DeletedAt", Type: "*time.Time", SoftDelete: true},
		},
	}})
	require.NoError(t, err)
	require.Len(t, types, 1)

	ty := types[0]
	assert.Equal(t, "user_profiles", ty.TableName())
	assert.Equal(t, "user_profile.go", ty.FileName())
	assert.Equal(t, "int64", ty.KeyType())
	assert.True(t, ty.IntegerKey())
	require.Len(t, ty.Fields, 3)
	assert.Equal(t, "display_name", ty.Fields[1].Column)
	assert.Same(t, ty.Fields[0], ty.ID)
}

func TestBuildTypesIDConvention(t *testing.T) {
	types, err := BuildTypes([]*load.Record{{
		Name: "Post",
		Fields: []load.Field{
			{Name: "Title", Type: "string"},
			{Name: "ID", Type: "int64"},
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, "ID", types[0].ID.Name)
	assert.True(t, types[0].ID.PK)
}

func TestBuildTypesTableOverride(t *testing.T) {
	types, err := BuildTypes([]*load.Record{{
		Name:  "Person",
		Table: "people_archive",
		Fields: []load.Field{
			{Name: "ID", Type: "int64"},
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, "people_archive", types[0].TableName())
}

func TestBuildTypesErrors(t *testing.T) {
	tests := []struct {
		name    string
		rec     *load.Record
		wantErr string
	}{
		{
			name:    "no fields",
			rec:     &load.Record{Name: "Empty"},
			wantErr: "record has no fields",
		},
		{
			name: "no primary key",
			rec: &load.Record{Name: "Note", Fields: []load.Field{
				{Name: "Body", Type: "string"},
			}},
			wantErr: "no primary key field",
		},
		{
			name: "two primary keys",
			rec: &load.Record{Name: "Pair", Fields: []load.Field{
				{Name: "A", Type: "int64", PK: true},
				{Name: "B", Type: "int64", PK: true},
			}},
			wantErr: "multiple primary key fields",
		},
		{
			name: "duplicate column",
			rec: &load.Record{Name: "Dup", Fields: []load.Field{
				{Name: "ID", Type: "int64", PK: true},
				{Name: "Email", Column: "id", Type: "string"},
			}},
			wantErr: "duplicate column id",
		},
		{
			name: "auto off the key",
			rec: &load.Record{Name: "Bad", Fields: []load.Field{
				{Name: "ID", Type: "int64", PK: true},
				{Name: "Counter", Type: "int64", Auto: true},
			}},
			wantErr: "auto is only valid on the primary key",
		},
		{
			name: "auto uuid key",
			rec: &load.Record{Name: "Bad", Fields: []load.Field{
				{Name: "ID", Type: "uuid.UUID", PK: true, Auto: true},
			}},
			wantErr: "auto requires an integer key",
		},
		{
			name: "soft delete on the key",
			rec: &load.Record{Name: "Bad", Fields: []load.Field{
				{Name: "ID", Type: "int64", PK: true, SoftDelete: true},
			}},
			wantErr: "cannot be the soft-delete column",
		},
		{
			name: "two soft deletes",
			rec: &load.Record{Name: "Bad", Fields: []load.Field{
				{Name: "ID", Type: "int64", PK: true},
				{Name: "DeletedAt", Type: "*time.Time", SoftDelete: true},
				{Name: "ArchivedAt", Type: "*time.Time", SoftDelete: true},
			}},
			wantErr: "multiple soft-delete fields",
		},
		{
			name: "non-time soft delete",
			rec: &load.Record{Name: "Bad", Fields: []load.Field{
				{Name: "ID", Type: "int64", PK: true},
				{Name: "Deleted", Type: "bool", SoftDelete: true},
			}},
			wantErr: "must be *time.Time",
		},
		{
			name: "unsupported type",
			rec: &load.Record{Name: "Bad", Fields: []load.Field{
				{Name: "ID", Type: "chan int", PK: true},
			}},
			wantErr: "unsupported field type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTypes([]*load.Record{tt.rec})
			require.ErrorIs(t, err, ErrInvalidRecord)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
