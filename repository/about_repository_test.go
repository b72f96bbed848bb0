package repository

import (
	"testing"

	"peako/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSectionCreatesThenUpdates(t *testing.T) {
	repo := NewAboutRepositoryWithDB(setupGormDB(t))

	section := &model.AboutSection{
		Section: "biography",
		Title:   "About Peak'O",
		Content: `{"text":"Hardstyle producer"}`,
		Visible: true,
		Order:   1,
	}
	require.NoError(t, repo.UpsertSection(section))
	require.NotEmpty(t, section.ID)
	firstID := section.ID

	// 同一区块键再次写入走更新路径，ID不变
	section2 := &model.AboutSection{
		Section: "biography",
		Title:   "About Peak'O (updated)",
		Content: `{"text":"Hardstyle producer from Germany"}`,
		Visible: true,
		Order:   2,
	}
	require.NoError(t, repo.UpsertSection(section2))
	assert.Equal(t, firstID, section2.ID)

	got, err := repo.GetSectionByID(firstID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "About Peak'O (updated)", got.Title)
	assert.Equal(t, 2, got.Order)

	sections, err := repo.ListSections(false)
	require.NoError(t, err)
	assert.Len(t, sections, 1)
}

func TestListSectionsOrderAndVisibility(t *testing.T) {
	repo := NewAboutRepositoryWithDB(setupGormDB(t))

	for _, s := range []*model.AboutSection{
		{Section: "gallery", Title: "Gallery", Visible: true, Order: 3},
		{Section: "biography", Title: "Bio", Visible: true, Order: 1},
		{Section: "draft", Title: "Draft", Visible: true, Order: 2},
	} {
		require.NoError(t, repo.UpsertSection(s))
	}

	// 隐藏一个区块
	hidden := &model.AboutSection{Section: "draft", Title: "Draft", Visible: false, Order: 2}
	require.NoError(t, repo.UpsertSection(hidden))

	all, err := repo.ListSections(false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// 按显示顺序排列
	assert.Equal(t, "biography", all[0].Section)
	assert.Equal(t, "draft", all[1].Section)
	assert.Equal(t, "gallery", all[2].Section)

	visible, err := repo.ListSections(true)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	for _, s := range visible {
		assert.NotEqual(t, "draft", s.Section)
	}
}

func TestGetSectionByIDNotFound(t *testing.T) {
	repo := NewAboutRepositoryWithDB(setupGormDB(t))

	got, err := repo.GetSectionByID("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteSection(t *testing.T) {
	repo := NewAboutRepositoryWithDB(setupGormDB(t))

	section := &model.AboutSection{Section: "temp", Title: "Temp", Visible: true}
	require.NoError(t, repo.UpsertSection(section))
	require.NoError(t, repo.DeleteSection(section.ID))

	got, err := repo.GetSectionByID(section.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
