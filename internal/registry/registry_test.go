package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tellnet/tellnet/internal/logger"
)

func strPtr(s string) *string { return &s }

func network(id string) Network {
	return Network{
		NetworkID:    id,
		Endpoint:     "http://localhost:1234/v0/",
		MemberID:     "member-" + id,
		MemberSecret: "secret-" + id,
	}
}

// newRegistry writes networks to a fresh file and loads it back.
func newRegistry(t *testing.T, networks ...Network) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "networks.json")
	r := New(path, logger.Discard())
	r.networks = networks
	require.NoError(t, r.Persist())
	return Load(path, logger.Discard())
}

func readIDs(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var networks []Network
	require.NoError(t, json.Unmarshal(data, &networks))
	ids := make([]string, len(networks))
	for i, n := range networks {
		ids[i] = n.NetworkID
	}
	return ids
}

func ids(r *Registry) []string {
	out := make([]string, 0, r.Len())
	for _, n := range r.Networks() {
		out = append(out, n.NetworkID)
	}
	return out
}

func TestSelectActive_DefaultIsStable(t *testing.T) {
	r := newRegistry(t, network("A"), network("B"), network("C"))

	for i := 0; i < 3; i++ {
		got, err := r.SelectActive("")
		require.NoError(t, err)
		require.Equal(t, "A", got.NetworkID)
	}
	require.Equal(t, []string{"A", "B", "C"}, ids(r))
}

func TestSelectActive_DefaultDoesNotWrite(t *testing.T) {
	r := newRegistry(t, network("A"), network("B"))
	require.NoError(t, os.Remove(r.Path()))

	_, err := r.SelectActive("")
	require.NoError(t, err)

	_, err = os.Stat(r.Path())
	require.True(t, os.IsNotExist(err), "selecting the default must not persist")
}

func TestSelectActive_SwapsIntoFront(t *testing.T) {
	r := newRegistry(t, network("A"), network("B"))

	got, err := r.SelectActive("B")
	require.NoError(t, err)
	require.Equal(t, "B", got.NetworkID)
	require.Equal(t, []string{"B", "A"}, ids(r))
	require.Equal(t, []string{"B", "A"}, readIDs(t, r.Path()))
}

func TestSelectActive_SwapProperty(t *testing.T) {
	for k := 1; k < 5; k++ {
		all := []Network{network("n0"), network("n1"), network("n2"), network("n3"), network("n4")}
		r := newRegistry(t, all...)
		target := all[k].NetworkID

		got, err := r.SelectActive(target)
		require.NoError(t, err)
		require.Equal(t, target, got.NetworkID)

		after := ids(r)
		require.Equal(t, target, after[0])
		require.Equal(t, "n0", after[k], "prior default must land at position %d", k)
		for i := 1; i < len(all); i++ {
			if i != k {
				require.Equal(t, all[i].NetworkID, after[i], "untouched positions keep their record")
			}
		}
		require.Equal(t, after, readIDs(t, r.Path()))

		reloaded := Load(r.Path(), logger.Discard())
		require.Equal(t, after, ids(reloaded))
	}
}

func TestSelectActive_AlreadyDefault(t *testing.T) {
	r := newRegistry(t, network("A"), network("B"))
	require.NoError(t, os.Remove(r.Path()))

	got, err := r.SelectActive("A")
	require.NoError(t, err)
	require.Equal(t, "A", got.NetworkID)

	_, err = os.Stat(r.Path())
	require.True(t, os.IsNotExist(err), "selecting the current default must not persist")
}

func TestSelectActive_EmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.json")
	r := Load(path, logger.Discard())

	for _, requested := range []string{"", "A"} {
		got, err := r.SelectActive(requested)
		require.ErrorIs(t, err, ErrNoNetworks)
		require.Equal(t, Network{}, got)
	}

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "no file may be written for an empty registry")
}

func TestSelectActive_NotFound(t *testing.T) {
	r := newRegistry(t, network("A"), network("B"))
	before, err := os.ReadFile(r.Path())
	require.NoError(t, err)

	_, err = r.SelectActive("Z")
	require.ErrorIs(t, err, ErrNetworkNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "Z", nf.NetworkID)
	require.Equal(t, "network Z not found", err.Error())

	require.Equal(t, []string{"A", "B"}, ids(r))
	after, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestSelectActive_ExactMatchOnly(t *testing.T) {
	r := newRegistry(t, network("abc"), network("ab"))

	_, err := r.SelectActive("AB")
	require.ErrorIs(t, err, ErrNetworkNotFound)

	got, err := r.SelectActive("ab")
	require.NoError(t, err)
	require.Equal(t, "ab", got.NetworkID)
}

func TestSelectActive_PersistFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	var logs bytes.Buffer
	r := New(filepath.Join(blocker, "networks.json"), logger.New(logger.Config{Output: &logs}))
	r.networks = []Network{network("A"), network("B")}

	got, err := r.SelectActive("B")
	require.NoError(t, err, "persist failures are not fatal")
	require.Equal(t, "B", got.NetworkID)
	require.Equal(t, []string{"B", "A"}, ids(r))
	require.Contains(t, logs.String(), "error writing file")
}

func TestMoveToFront(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "networks.json"), logger.Discard())
	r.networks = []Network{network("A"), network("B"), network("C")}

	require.NoError(t, r.MoveToFront(2))
	require.Equal(t, []string{"C", "B", "A"}, ids(r))

	require.NoError(t, r.MoveToFront(0))
	require.Equal(t, []string{"C", "B", "A"}, ids(r))

	require.Error(t, r.MoveToFront(3))
	require.Error(t, r.MoveToFront(-1))

	_, err := os.Stat(r.Path())
	require.True(t, os.IsNotExist(err), "MoveToFront does not persist")
}

func TestInsertAsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "networks.json")
	r := Load(path, logger.Discard())

	require.NoError(t, r.InsertAsDefault(network("A")))
	require.NoError(t, r.InsertAsDefault(network("B")))

	require.Equal(t, []string{"B", "A"}, ids(r))
	require.Equal(t, []string{"B", "A"}, readIDs(t, path))

	got, err := r.SelectActive("")
	require.NoError(t, err)
	require.Equal(t, "B", got.NetworkID)
}

func TestInsertAsDefault_Duplicate(t *testing.T) {
	r := newRegistry(t, network("A"), network("B"))

	err := r.InsertAsDefault(network("B"))
	require.ErrorIs(t, err, ErrDuplicateNetwork)
	require.Equal(t, []string{"A", "B"}, ids(r))
}

func TestUpdateInPlace_Alias(t *testing.T) {
	a := network("A")
	a.Alias = strPtr("old")
	r := newRegistry(t, a, network("B"))

	require.NoError(t, r.UpdateInPlace(0, func(n *Network) { n.SetAlias("new") }))

	reloaded := Load(r.Path(), logger.Discard())
	got := reloaded.Networks()[0]
	require.Equal(t, "new", got.AliasOrEmpty())

	want := a
	want.Alias = strPtr("new")
	require.Equal(t, want, got, "all other fields unchanged")
	require.Equal(t, network("B"), reloaded.Networks()[1])
}

func TestUpdateInPlace_OutOfRange(t *testing.T) {
	r := newRegistry(t, network("A"))
	called := false
	err := r.UpdateInPlace(1, func(*Network) { called = true })
	require.Error(t, err)
	require.False(t, called)
}

func TestNetworks_ReturnsCopy(t *testing.T) {
	r := newRegistry(t, network("A"))
	list := r.Networks()
	list[0].NetworkID = "mutated"
	require.Equal(t, "A", r.Networks()[0].NetworkID)
}

func TestIndexOf(t *testing.T) {
	r := newRegistry(t, network("A"), network("B"))
	require.Equal(t, 0, r.IndexOf("A"))
	require.Equal(t, 1, r.IndexOf("B"))
	require.Equal(t, -1, r.IndexOf("C"))
}

func TestSetAlias_EmptyClears(t *testing.T) {
	n := network("A")
	n.SetAlias("x")
	require.Equal(t, "x", n.AliasOrEmpty())
	n.SetAlias("")
	require.Nil(t, n.Alias)
	require.Equal(t, "", n.AliasOrEmpty())
}
