package navigator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/lessons"
	"github.com/agentstation/lessonmap/pkg/navigator"
)

func talmud() []lessons.Lesson {
	return []lessons.Lesson{
		{ID: "a", Subject: "Talmud", SubSubject: "Shabbat", Title: "Lesson A", Year: "2024"},
		{ID: "b", Subject: "Talmud", SubSubject: "Eruvin", Title: "Lesson B", Year: "2023"},
	}
}

func catalog() []lessons.Lesson {
	return append(talmud(),
		lessons.Lesson{ID: "c", Subject: "Halacha", SubSubject: "Kashrut", Title: "Basics", Year: "2022"},
		lessons.Lesson{ID: "d", Subject: "Talmud", SubSubject: "Shabbat", Title: "Hotzaah", Year: "2024"},
	)
}

func names(items []navigator.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func newNavigator(all []lessons.Lesson) *navigator.Navigator {
	return navigator.New(navigator.Build(lessons.Group(all)))
}

func TestBuild(t *testing.T) {
	items := navigator.Build(lessons.Group(talmud()))
	require.Len(t, items, 5)

	subject, ok := navigator.Find(items, "Talmud")
	require.True(t, ok)
	assert.True(t, subject.Folder)
	assert.Equal(t, navigator.LevelSubject, subject.Level)
	assert.Equal(t, "subject_Talmud", subject.ID)

	sub, ok := navigator.Find(items, "Talmud/Shabbat")
	require.True(t, ok)
	assert.Equal(t, navigator.LevelSubSubject, sub.Level)
	assert.Equal(t, "subsubject_Talmud/Shabbat", sub.ID)

	leaf, ok := navigator.Find(items, "Talmud/Shabbat/Lesson A")
	require.True(t, ok)
	assert.False(t, leaf.Folder)
	assert.Equal(t, navigator.LevelLesson, leaf.Level)
	assert.Equal(t, "a", leaf.ID)
	require.NotNil(t, leaf.Lesson)
	assert.Equal(t, "2024", leaf.Lesson.Year)
	assert.Equal(t, "Lesson A (2024)", leaf.Label)
}

func TestBuildSanitizesSeparators(t *testing.T) {
	items := navigator.Build(lessons.Group([]lessons.Lesson{
		{ID: "x", Subject: "A/B", SubSubject: "C", Title: "D/E"},
	}))
	for _, item := range items {
		assert.Len(t, navigator.SplitPath(item.Path), item.Level+1, item.Path)
	}
	subject, ok := navigator.FindByID(items, "subject_A/B")
	require.True(t, ok)
	assert.Equal(t, "A∕B", subject.Name)
	assert.Equal(t, "A/B", subject.Label)
}

func TestPathUniqueness(t *testing.T) {
	items := navigator.Build(lessons.Group(catalog()))
	seen := map[string]bool{}
	for _, item := range items {
		assert.False(t, seen[item.Path], "duplicate path %s", item.Path)
		seen[item.Path] = true
	}
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "", navigator.ParentPath("Talmud"))
	assert.Equal(t, "Talmud", navigator.ParentPath("Talmud/Shabbat"))
	assert.Equal(t, "Talmud/Shabbat", navigator.ParentPath("Talmud/Shabbat/Lesson A"))

	assert.True(t, navigator.IsChildOf("Talmud", ""))
	assert.True(t, navigator.IsChildOf("Talmud/Shabbat", "Talmud"))
	assert.False(t, navigator.IsChildOf("Talmud/Shabbat/Lesson A", "Talmud"))
	assert.False(t, navigator.IsChildOf("Talmudic/Shabbat", "Talmud"))
	assert.False(t, navigator.IsChildOf("Talmud", "Talmud"))

	assert.Empty(t, navigator.SplitPath(""))
	assert.Equal(t, []string{"a", "b"}, navigator.SplitPath("a/b"))
}

func TestExampleScenario(t *testing.T) {
	nav := newNavigator(talmud())

	assert.True(t, nav.AtRoot())
	assert.Equal(t, []string{"Talmud"}, names(nav.Visible()))

	root := nav.Visible()[0]
	require.NoError(t, nav.NavigateToFolder(root))

	visible := nav.Visible()
	require.Len(t, visible, 3)
	assert.True(t, visible[0].IsBack())
	assert.Equal(t, "", visible[0].Path, "back entry from a subject points at the root")
	assert.Equal(t, []string{"Eruvin", "Shabbat"}, names(visible[1:]))
}

func TestVisibleDirectChildrenOnly(t *testing.T) {
	nav := newNavigator(catalog())
	require.NoError(t, nav.NavigateToPath("Talmud/Shabbat"))

	visible := nav.Visible()
	require.Len(t, visible, 3)
	back := visible[0]
	assert.True(t, back.IsBack())
	assert.Equal(t, "Talmud", back.Path)
	assert.Equal(t, []string{"Hotzaah", "Lesson A"}, names(visible[1:]))
	for _, item := range visible[1:] {
		assert.False(t, item.Folder)
	}
}

func TestFoldersBeforeLeaves(t *testing.T) {
	items := []navigator.Item{
		{Name: "zeta", Path: "S/zeta", Folder: true, Level: 1},
		{Name: "alpha", Path: "S/alpha", ID: "1", Level: 1},
		{Name: "beta", Path: "S/beta", Folder: true, Level: 1},
		{Name: "S", Path: "S", Folder: true},
	}
	assert.Equal(t, []string{"beta", "zeta", "alpha"}, names(navigator.Children(items, "S")))
}

func TestNavigationInverse(t *testing.T) {
	nav := newNavigator(catalog())
	items := nav.Items()

	for _, folder := range items {
		if !folder.Folder || folder.Level == 0 {
			continue
		}
		parent := navigator.ParentPath(folder.Path)
		require.NoError(t, nav.NavigateToPath(parent))
		before := nav.Visible()

		require.NoError(t, nav.NavigateToFolder(folder))
		nav.NavigateBack()

		require.NotNil(t, nav.Current())
		assert.Equal(t, parent, nav.Current().Path)
		assert.Equal(t, before, nav.Visible())
	}

	nav.NavigateToRoot()
	rootVisible := nav.Visible()
	nav.NavigateBack()
	assert.True(t, nav.AtRoot(), "back from the root stays at the root")
	assert.Equal(t, rootVisible, nav.Visible())
}

func TestNavigateBackFromSubject(t *testing.T) {
	nav := newNavigator(catalog())
	require.NoError(t, nav.NavigateToPath("Halacha"))
	nav.NavigateBack()
	assert.True(t, nav.AtRoot())
}

func TestNavigateErrors(t *testing.T) {
	nav := newNavigator(catalog())

	leaf, ok := navigator.FindByID(nav.Items(), "a")
	require.True(t, ok)
	err := nav.NavigateToFolder(leaf)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	assert.True(t, nav.AtRoot())

	err = nav.NavigateToPath("Nope")
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestBackEntrySelection(t *testing.T) {
	nav := newNavigator(catalog())
	require.NoError(t, nav.NavigateToPath("Talmud/Eruvin"))

	back := nav.Visible()[0]
	require.NoError(t, nav.NavigateToFolder(back))
	assert.Equal(t, "Talmud", nav.Current().Path)
}

func TestBreadcrumb(t *testing.T) {
	nav := newNavigator(catalog())
	assert.Empty(t, nav.Breadcrumb())
	assert.Equal(t, "Root", nav.Title())

	require.NoError(t, nav.NavigateToPath("Talmud/Shabbat"))
	assert.Equal(t, []string{"Talmud", "Shabbat"}, nav.Breadcrumb())
	assert.Equal(t, "Talmud/Shabbat", nav.Title())
}

func TestFolderChangedHook(t *testing.T) {
	nav := newNavigator(catalog())
	var seen []string
	nav.OnFolderChanged(func(current *navigator.Item) {
		if current == nil {
			seen = append(seen, "<root>")
			return
		}
		seen = append(seen, current.Path)
	})

	require.NoError(t, nav.NavigateToPath("Talmud"))
	require.NoError(t, nav.NavigateToPath("Talmud/Shabbat"))
	nav.NavigateBack()
	nav.NavigateToRoot()

	assert.Equal(t, []string{"Talmud", "Talmud/Shabbat", "Talmud", "<root>"}, seen)
}

func TestSetItems(t *testing.T) {
	nav := newNavigator(catalog())
	require.NoError(t, nav.NavigateToPath("Talmud/Shabbat"))

	var changed int
	nav.OnFolderChanged(func(*navigator.Item) { changed++ })

	t.Run("keeps current folder when it still exists", func(t *testing.T) {
		nav.SetItems(navigator.Build(lessons.Group(talmud())))
		require.NotNil(t, nav.Current())
		assert.Equal(t, "Talmud/Shabbat", nav.Current().Path)
		assert.Equal(t, []string{"..", "Lesson A"}, names(nav.Visible()))
		assert.Zero(t, changed)
	})

	t.Run("returns to root when folder disappears", func(t *testing.T) {
		nav.SetItems(navigator.Build(lessons.Group(catalog()[2:3])))
		assert.True(t, nav.AtRoot())
		assert.Equal(t, []string{"Halacha"}, names(nav.Visible()))
		assert.Equal(t, 1, changed)
	})
}

func TestHasChildren(t *testing.T) {
	items := []navigator.Item{
		{Name: "S", Path: "S", Folder: true},
		{Name: "Empty", Path: "S/Empty", Folder: true, Level: 1, HasChildren: true},
		{Name: "Full", Path: "S/Full", Folder: true, Level: 1},
		{Name: "L", Path: "S/Full/L", ID: "l", Level: 2},
	}
	nav := navigator.New(items)
	require.NoError(t, nav.NavigateToPath("S"))

	visible := nav.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, "Empty", visible[1].Name)
	assert.False(t, visible[1].HasChildren)
	assert.Equal(t, "Full", visible[2].Name)
	assert.True(t, visible[2].HasChildren)
}

func TestToggleExpanded(t *testing.T) {
	nav := newNavigator(catalog())
	nav.ToggleExpanded("Talmud")
	item, ok := navigator.Find(nav.Items(), "Talmud")
	require.True(t, ok)
	assert.True(t, item.Expanded)
}

func TestFilter(t *testing.T) {
	nav := newNavigator(catalog())

	nav.SetFilter("  hotzaah ")
	assert.Equal(t, "hotzaah", nav.Filter())
	assert.Equal(t, []string{"Talmud"}, names(nav.Visible()))

	require.NoError(t, nav.NavigateToPath("Talmud"))
	assert.Equal(t, []string{"..", "Shabbat"}, names(nav.Visible()))

	require.NoError(t, nav.NavigateToPath("Talmud/Shabbat"))
	assert.Equal(t, []string{"..", "Hotzaah"}, names(nav.Visible()))

	t.Run("by year", func(t *testing.T) {
		nav.NavigateToRoot()
		nav.SetFilter("2022")
		assert.Equal(t, []string{"Halacha"}, names(nav.Visible()))
	})

	t.Run("folder name match", func(t *testing.T) {
		nav.SetFilter("ERUV")
		assert.Equal(t, []string{"Talmud"}, names(nav.Visible()))
	})

	t.Run("no match", func(t *testing.T) {
		nav.SetFilter("nothing")
		assert.Empty(t, nav.Visible())
	})

	t.Run("clear", func(t *testing.T) {
		nav.SetFilter("")
		assert.Equal(t, []string{"Halacha", "Talmud"}, names(nav.Visible()))
	})
}

func TestLeaves(t *testing.T) {
	items := navigator.Build(lessons.Group(catalog()))

	talmudFolder, ok := navigator.Find(items, "Talmud")
	require.True(t, ok)
	ids := []string{}
	for _, leaf := range navigator.Leaves(items, talmudFolder) {
		ids = append(ids, leaf.ID)
	}
	assert.ElementsMatch(t, []string{"a", "b", "d"}, ids)

	eruvin, ok := navigator.Find(items, "Talmud/Eruvin")
	require.True(t, ok)
	leaves := navigator.Leaves(items, eruvin)
	require.Len(t, leaves, 1)
	assert.Equal(t, "b", leaves[0].ID)
}
