package clusterfs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/configs"

func newMemStore() *Store {
	return NewStore(afero.NewMemMapFs(), root)
}

func TestWriteReadFile(t *testing.T) {
	s := newMemStore()

	path, err := s.WriteFile("ncTest", "core-site.xml", []byte("<configuration/>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "ncTest", "core-site.xml"), path)

	data, err := s.ReadFile("ncTest", "core-site.xml")
	require.NoError(t, err)
	assert.Equal(t, "<configuration/>", string(data))
	assert.True(t, s.Exists("ncTest"))
	assert.True(t, s.FileExists("ncTest", "core-site.xml"))
	assert.Equal(t, []string{"core-site.xml"}, s.ListFiles("ncTest"))
}

func TestFindDirCaseInsensitive(t *testing.T) {
	s := newMemStore()
	_, err := s.WriteFile("NCTESTName", "a", nil)
	require.NoError(t, err)

	dir, ok := s.FindDir("ncTestName")
	require.True(t, ok)
	assert.Equal(t, "NCTESTName", dir)

	_, ok = s.FindDir("other")
	assert.False(t, ok)
}

func TestFindDirMissingRoot(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/does/not/exist")
	_, ok := s.FindDir("x")
	assert.False(t, ok)
	assert.Nil(t, s.ListFiles("x"))
}

func TestProperties(t *testing.T) {
	s := newMemStore()

	p, err := s.LoadProperties("ncTest")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())

	_, _, err = p.Set("pentaho.authentication.default.kerberos.principal", "user@EXAMPLE.COM")
	require.NoError(t, err)
	_, _, err = p.Set("pentaho.authentication.default.kerberos.password", "")
	require.NoError(t, err)
	_, _, err = p.Set("some.variable", "${HOME}/x")
	require.NoError(t, err)
	require.NoError(t, s.SaveProperties("ncTest", p))

	loaded, err := s.LoadProperties("ncTest")
	require.NoError(t, err)
	v, ok := loaded.Get("pentaho.authentication.default.kerberos.principal")
	assert.True(t, ok)
	assert.Equal(t, "user@EXAMPLE.COM", v)
	v, ok = loaded.Get("pentaho.authentication.default.kerberos.password")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, "${HOME}/x", loaded.GetString("some.variable", ""))
}

func TestMove(t *testing.T) {
	s := newMemStore()
	_, err := s.WriteFile("old", "core-site.xml", []byte("old-core"))
	require.NoError(t, err)
	_, err = s.WriteFile("old", "config.properties", []byte("a = b\n"))
	require.NoError(t, err)
	_, err = s.WriteFile("new", "hive-site.xml", []byte("hive"))
	require.NoError(t, err)

	require.NoError(t, s.Move("old", "new"))

	assert.False(t, s.Exists("old"))
	assert.Equal(t, []string{"config.properties", "core-site.xml", "hive-site.xml"}, s.ListFiles("new"))
	data, err := s.ReadFile("new", "core-site.xml")
	require.NoError(t, err)
	assert.Equal(t, "old-core", string(data))
}

func TestMoveCaseOnly(t *testing.T) {
	s := newMemStore()
	_, err := s.WriteFile("NCTEST", "core-site.xml", []byte("core"))
	require.NoError(t, err)

	require.NoError(t, s.Move("NCTEST", "ncTest"))

	dir, ok := s.FindDir("nctest")
	require.True(t, ok)
	assert.Equal(t, "ncTest", dir)
	assert.Equal(t, []string{"core-site.xml"}, s.ListFiles("ncTest"))

	infos, err := afero.ReadDir(s.fs, root)
	require.NoError(t, err)
	require.Len(t, infos, 1, "scratch dir must not be left behind")
}

func TestMoveCaseOnlyKeepsSiblingDirs(t *testing.T) {
	s := newMemStore()
	_, err := s.WriteFile("NCTEST", "core-site.xml", []byte("core"))
	require.NoError(t, err)
	_, err = s.WriteFile("ncTest.rename", "keep.txt", []byte("keep"))
	require.NoError(t, err)

	require.NoError(t, s.Move("NCTEST", "ncTest"))

	assert.Equal(t, []string{"core-site.xml"}, s.ListFiles("ncTest"))
	assert.Equal(t, []string{"keep.txt"}, s.ListFiles("ncTest.rename"))
	data, err := s.ReadFile("ncTest.rename", "keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestTempDir(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/fresh/configs")

	a, err := s.TempDir(".staging-")
	require.NoError(t, err)
	b, err := s.TempDir(".staging-")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, ".staging-"))
	assert.True(t, s.Exists(a))
	assert.Empty(t, s.ListFiles(a))
}

func TestRemove(t *testing.T) {
	s := newMemStore()
	_, err := s.WriteFile("gone", "a", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, s.Remove("gone"))
	assert.False(t, s.Exists("gone"))
	require.NoError(t, s.Remove("never-existed"))
}

func TestRemoveFileAndOwns(t *testing.T) {
	s := newMemStore()
	path, err := s.WriteFile("ncTest", "test.keytab", []byte("keytab"))
	require.NoError(t, err)

	assert.True(t, s.Owns("ncTest", path))
	assert.False(t, s.Owns("other", path))
	assert.False(t, s.Owns("ncTest", ""))

	require.NoError(t, s.RemoveFile("ncTest", "test.keytab"))
	assert.False(t, s.FileExists("ncTest", "test.keytab"))
	assert.NoError(t, s.RemoveFile("ncTest", "test.keytab"))
}
