package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffDirectory_PrefersPrimaryRegistry(t *testing.T) {
	staff := map[string]string{"s1": "田中花子"}
	users := map[string]string{"s1": "tanaka@example.com", "u1": "佐藤次郎"}
	d := NewStaffDirectory(staff, users)

	assert.Equal(t, "田中花子", d.Resolve("s1"))
	assert.Equal(t, "佐藤次郎", d.Resolve("u1"))
}

func TestStaffDirectory_FallsBackToRawRef(t *testing.T) {
	d := NewStaffDirectory(map[string]string{}, map[string]string{})
	assert.Equal(t, "unknown-id", d.Resolve("unknown-id"))
}

func TestStaffDirectory_EmptyRefStaysEmpty(t *testing.T) {
	d := NewStaffDirectory(map[string]string{"": "should-not-match"})
	assert.Equal(t, "", d.Resolve(""))
}

func TestStaffDirectory_SkipsEmptyRegistryValues(t *testing.T) {
	// an id present with an empty name should not shadow a later registry
	d := NewStaffDirectory(map[string]string{"s1": ""}, map[string]string{"s1": "鈴木一郎"})
	assert.Equal(t, "鈴木一郎", d.Resolve("s1"))
}
