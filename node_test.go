package sovt

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func join(names ...string) string {
	return strings.Join(names, string(filepath.Separator))
}

func mustGet(t *testing.T, root string, names ...string) *Node {
	t.Helper()
	n, err := Get(root, names...)
	require.NoError(t, err)
	return n
}

func TestRoot(t *testing.T) {
	root1 := mustGet(t, "root1")
	root1Again := mustGet(t, "root1")
	root2 := mustGet(t, "root2")

	assert.Equal(t, "root1", root1.String())
	assert.Same(t, root1, root1Again)
	assert.True(t, root1.Equal(root1Again))
	assert.False(t, root1.Equal(root2))
	assert.Equal(t, root1.Sum64(), root1Again.Sum64())

	assert.Equal(t, "root2", root2.String())
	assert.Same(t, root2, mustGet(t, "root2"))
}

func TestBlankRootIsNotAllowed(t *testing.T) {
	for _, name := range []string{"", " ", "\t\n"} {
		_, err := Root(name)
		require.ErrorIs(t, err, ErrBlankName)
	}
}

func TestChild(t *testing.T) {
	root := mustGet(t, "childtest-root")
	child1 := mustGet(t, "childtest-root", "child1")
	child2 := mustGet(t, "childtest-root", "child2")

	assert.Equal(t, join("childtest-root", "child1"), child1.String())
	assert.Same(t, child1, mustGet(t, "childtest-root", "child1"))
	assert.False(t, child1.Equal(child2))
	assert.True(t, child1.Equal(&Node{parent: root, name: "child1"}))
	assert.Equal(t, child1.Sum64(), (&Node{parent: root, name: "child1"}).Sum64())
	assert.NotEqual(t, child1.Sum64(), child2.Sum64())

	assert.Equal(t, join("childtest-root", "child2"), child2.String())
	assert.Same(t, child2, mustGet(t, "childtest-root", "child2"))
}

func TestBlankChildIsNotAllowed(t *testing.T) {
	root := mustGet(t, "blankchild-root")

	for _, name := range []string{"", "   "} {
		_, err := root.Child(name)
		require.ErrorIs(t, err, ErrBlankName)
	}
	// Failed calls must not install anything.
	assert.Nil(t, root.children)
}

func TestNameAndParent(t *testing.T) {
	child := mustGet(t, "parenttest-root", "a", "b")

	assert.Equal(t, "b", child.Name())
	assert.Equal(t, "a", child.Parent().Name())
	assert.Same(t, mustGet(t, "parenttest-root"), child.Parent().Parent())
	assert.Nil(t, child.Parent().Parent().Parent())
	assert.Equal(t, 3, child.Depth())
}

func TestSegmentGranularity(t *testing.T) {
	shortFirst := mustGet(t, join("", "home"), "user"+string(filepath.Separator)+"file1.txt")
	longFirst := mustGet(t, join("", "home", "user"), "file1.txt")

	// Identical rendering, different trees.
	assert.Equal(t, shortFirst.String(), longFirst.String())
	assert.False(t, shortFirst.Equal(longFirst))
	assert.Equal(t, join("", "home"), shortFirst.Parent().String())
	assert.Equal(t, join("", "home", "user"), longFirst.Parent().String())
}

func TestStringJoinsWithPlatformSeparator(t *testing.T) {
	n := mustGet(t, "strtest-root", "a", "b", "c")
	assert.Equal(t, join("strtest-root", "a", "b", "c"), n.String())
}

func TestStringDoesNotDoubleTrailingSeparator(t *testing.T) {
	sep := string(filepath.Separator)
	n := mustGet(t, sep, "home")
	assert.Equal(t, sep+"home", n.String())

	withTrailing := mustGet(t, "prefix"+sep, "suffix")
	assert.Equal(t, "prefix"+sep+"suffix", withTrailing.String())
}

func TestFromPath(t *testing.T) {
	sep := string(filepath.Separator)

	abs, err := FromPath(join("", "home", "user", "file1.txt"))
	require.NoError(t, err)
	assert.Same(t, mustGet(t, sep, "home", "user", "file1.txt"), abs)
	assert.Equal(t, join("", "home", "user"), abs.Parent().String())

	rel, err := FromPath(join("Documents", "file.txt"))
	require.NoError(t, err)
	assert.Same(t, mustGet(t, "Documents", "file.txt"), rel)

	// Trailing separators are cleaned before splitting.
	cleaned, err := FromPath(join("", "home") + sep)
	require.NoError(t, err)
	assert.Same(t, mustGet(t, sep, "home"), cleaned)
}

func TestEqualIsIndependentOfConstructionOrder(t *testing.T) {
	a := mustGet(t, "eqorder-root", "x", "y")
	b := mustGet(t, "eqorder-root")
	bx, err := b.Child("x")
	require.NoError(t, err)
	by, err := bx.Child("y")
	require.NoError(t, err)

	assert.Same(t, a, by)
	assert.True(t, a.Equal(by))
}
