package lessons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lessonmap/pkg/errors"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYearChoices(t *testing.T) {
	years := YearChoices(fixedNow)
	assert.Equal(t, []string{"2026", "2025", "2024", "2023", "2022", "2021", "2020"}, years)
	assert.Equal(t, "2025", DefaultYear(fixedNow))
}

func TestNew(t *testing.T) {
	l := New(Draft{Title: "  Lesson A ", Subject: "Talmud", SubSubject: "Shabbat", Year: "2024"}, fixedNow)
	assert.NotEmpty(t, l.ID)
	assert.True(t, ValidID(l.ID))
	assert.Equal(t, "Lesson A", l.Title)
	assert.Equal(t, fixedNow, l.CreatedAt)
	assert.Empty(t, l.AudioPath)

	other := New(Draft{Title: "Lesson A"}, fixedNow)
	assert.NotEqual(t, l.ID, other.ID)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("6f1c2d"))
	assert.True(t, ValidID("..odd"))
	assert.True(t, ValidID("a..b"))
	for _, id := range []string{"", ".", "..", "a/b", `a\b`, "a:b", "a*b"} {
		assert.False(t, ValidID(id), id)
	}
}

func TestApply(t *testing.T) {
	base := Lesson{ID: "1", Title: "Old", AudioPath: "/managed/1.mp3", PdfPath: "/managed/1_pdf.pdf", HasPdf: true}

	t.Run("keeps media when sources are empty", func(t *testing.T) {
		got := base.Apply(Draft{Title: "New", Subject: "S", SubSubject: "SS", Year: "2024"})
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, base.AudioPath, got.AudioPath)
		assert.Equal(t, base.PdfPath, got.PdfPath)
		assert.Equal(t, "1", got.ID)
	})

	t.Run("sets new sources", func(t *testing.T) {
		got := base.Apply(Draft{Title: "New", AudioSource: "/src/a.wav", PdfSource: "/src/b.pdf"})
		assert.Equal(t, "/src/a.wav", got.AudioPath)
		assert.Equal(t, "/src/b.pdf", got.PdfPath)
	})

	t.Run("clears pdf", func(t *testing.T) {
		got := base.Apply(Draft{Title: "New", ClearPdf: true, PdfSource: "/src/b.pdf"})
		assert.Empty(t, got.PdfPath)
	})
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Lesson A (2024)", Lesson{Title: "Lesson A", Year: "2024"}.Label())
	assert.Equal(t, "Lesson A", Lesson{Title: "Lesson A"}.Label())
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	audio := writeFile(t, dir, "a.mp3", "audio")
	pdf := writeFile(t, dir, "a.pdf", "pdf")
	missing := filepath.Join(dir, "missing.mp3")

	valid := Draft{Title: "Lesson A", Subject: "Talmud", SubSubject: "Shabbat", Year: "2024", AudioSource: audio}

	tests := []struct {
		name   string
		mutate func(*Draft)
		mode   Mode
		field  string
	}{
		{"valid create", func(*Draft) {}, ModeCreate, ""},
		{"valid with pdf", func(d *Draft) { d.PdfSource = pdf }, ModeCreate, ""},
		{"empty title", func(d *Draft) { d.Title = "   " }, ModeCreate, FieldTitle},
		{"short title", func(d *Draft) { d.Title = " ab " }, ModeCreate, FieldTitle},
		{"title with slash", func(d *Draft) { d.Title = "a/b/c" }, ModeCreate, FieldTitle},
		{"hebrew title counts runes", func(d *Draft) { d.Title = "שבת" }, ModeCreate, ""},
		{"missing subject", func(d *Draft) { d.Subject = "" }, ModeCreate, FieldSubject},
		{"subject with slash", func(d *Draft) { d.Subject = "Tal/mud" }, ModeCreate, FieldSubject},
		{"missing sub-subject", func(d *Draft) { d.SubSubject = " " }, ModeCreate, FieldSubSubject},
		{"missing year", func(d *Draft) { d.Year = "" }, ModeCreate, FieldYear},
		{"year out of range", func(d *Draft) { d.Year = "2015" }, ModeCreate, FieldYear},
		{"next year allowed", func(d *Draft) { d.Year = "2026" }, ModeCreate, ""},
		{"audio required on create", func(d *Draft) { d.AudioSource = "" }, ModeCreate, FieldAudio},
		{"audio optional on update", func(d *Draft) { d.AudioSource = "" }, ModeUpdate, ""},
		{"missing audio on update", func(d *Draft) { d.AudioSource = missing }, ModeUpdate, FieldAudio},
		{"audio is a directory", func(d *Draft) { d.AudioSource = dir }, ModeCreate, FieldAudio},
		{"missing pdf", func(d *Draft) { d.PdfSource = missing }, ModeCreate, FieldPdf},
		{"missing pdf ignored when clearing", func(d *Draft) { d.PdfSource = missing; d.ClearPdf = true }, ModeUpdate, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := Validate(d, tt.mode, fixedNow)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errors.KindValidation, errors.KindOf(err))
			var verr *errors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestWarnings(t *testing.T) {
	dir := t.TempDir()
	audio := writeFile(t, dir, "a.mp3", "small")
	assert.Empty(t, Warnings(Draft{AudioSource: audio}))
	assert.Empty(t, Warnings(Draft{AudioSource: filepath.Join(dir, "none")}))
}

func talmudCatalog() []Lesson {
	return []Lesson{
		{ID: "a", Subject: "Talmud", SubSubject: "Shabbat", Title: "Lesson A", Year: "2024"},
		{ID: "b", Subject: "Talmud", SubSubject: "Eruvin", Title: "Lesson B", Year: "2023"},
	}
}

func TestGroupExample(t *testing.T) {
	grouped := Group(talmudCatalog())
	require.Len(t, grouped, 1)
	assert.Equal(t, "Talmud", grouped[0].Name)
	require.Len(t, grouped[0].SubSubjects, 2)
	assert.Equal(t, "Eruvin", grouped[0].SubSubjects[0].Name)
	assert.Equal(t, "Shabbat", grouped[0].SubSubjects[1].Name)
	assert.Equal(t, "b", grouped[0].SubSubjects[0].Lessons[0].ID)
	assert.Equal(t, "a", grouped[0].SubSubjects[1].Lessons[0].ID)
	assert.Equal(t, 2, grouped[0].Count())
}

func TestGroupCompleteness(t *testing.T) {
	all := []Lesson{
		{ID: "1", Subject: "Halacha", SubSubject: "Shabbat", Title: "Muktzeh"},
		{ID: "2", Subject: "Talmud", SubSubject: "Shabbat", Title: "Zeta"},
		{ID: "3", Subject: "Talmud", SubSubject: "Shabbat", Title: "Alpha"},
		{ID: "4", Subject: "Musar", SubSubject: "Mesilat Yesharim", Title: "Zehirut"},
		{ID: "5", Subject: "Talmud", SubSubject: "Berachot", Title: "Alpha", Year: "2020"},
		{ID: "6", Subject: "Talmud", SubSubject: "Shabbat", Title: "Alpha", Year: "2019"},
	}

	grouped := Group(all)

	pairs := map[[2]string][]string{}
	for _, l := range all {
		key := [2]string{l.Subject, l.SubSubject}
		pairs[key] = append(pairs[key], l.ID)
	}

	seen := 0
	for _, s := range grouped {
		require.NotEmpty(t, s.SubSubjects)
		for _, sub := range s.SubSubjects {
			require.NotEmpty(t, sub.Lessons)
			ids := make([]string, 0, len(sub.Lessons))
			for _, l := range sub.Lessons {
				ids = append(ids, l.ID)
			}
			assert.ElementsMatch(t, pairs[[2]string{s.Name, sub.Name}], ids)
			seen++
		}
	}
	assert.Equal(t, len(pairs), seen)

	assert.Equal(t, []string{"Halacha", "Musar", "Talmud"}, []string{grouped[0].Name, grouped[1].Name, grouped[2].Name})
	shabbat := grouped[2].SubSubjects[1]
	assert.Equal(t, "Shabbat", shabbat.Name)
	assert.Equal(t, []string{"3", "6", "2"}, []string{shabbat.Lessons[0].ID, shabbat.Lessons[1].ID, shabbat.Lessons[2].ID})
}

func TestGroupIgnoresInsertionOrder(t *testing.T) {
	all := talmudCatalog()
	reversed := []Lesson{all[1], all[0]}
	assert.Equal(t, Group(all), Group(reversed))
	assert.Empty(t, Group(nil))
}

func TestDistinct(t *testing.T) {
	all := append(talmudCatalog(),
		Lesson{ID: "c", Subject: "Halacha", SubSubject: "Kashrut", Title: "Basics"},
		Lesson{ID: "d", Subject: "Talmud", SubSubject: "Shabbat", Title: "Lesson C"},
	)
	assert.Equal(t, []string{"Halacha", "Talmud"}, DistinctSubjects(all))
	assert.Equal(t, []string{"Eruvin", "Shabbat"}, DistinctSubSubjects(all, "Talmud"))
	assert.Empty(t, DistinctSubSubjects(all, "Kabbalah"))

	filtered := FilterBy(all, "Talmud", "Shabbat")
	require.Len(t, filtered, 2)
	assert.Equal(t, "Lesson A", filtered[0].Title)
	assert.Equal(t, "Lesson C", filtered[1].Title)

	l, ok := Find(all, "c")
	assert.True(t, ok)
	assert.Equal(t, "Basics", l.Title)
	_, ok = Find(all, "zz")
	assert.False(t, ok)
}
