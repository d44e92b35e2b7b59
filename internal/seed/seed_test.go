package seed

import (
	"testing"

	"quorum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Team{},
		&models.Profile{},
		&models.Topic{},
		&models.Question{},
		&models.Reply{},
	))
	return db
}

func TestSeeder_Run(t *testing.T) {
	db := setupSeedDB(t, "seed_run")
	seeder := NewSeeder(db)

	aiID, err := seeder.Run(Options{NumProfiles: 20, NumQuestions: 15, ShouldClean: true})
	require.NoError(t, err)
	require.NotZero(t, aiID)

	var questionCount, replyCount int64
	require.NoError(t, db.Model(&models.Question{}).Count(&questionCount).Error)
	require.NoError(t, db.Model(&models.Reply{}).Count(&replyCount).Error)
	assert.EqualValues(t, 15, questionCount)

	var ai models.Profile
	require.NoError(t, db.First(&ai, aiID).Error)
	assert.Equal(t, AIProfileName, ai.FirstName)
}

func TestSeeder_AIProfileIsIdempotent(t *testing.T) {
	db := setupSeedDB(t, "seed_ai")
	seeder := NewSeeder(db)

	first, err := seeder.SeedAIProfile()
	require.NoError(t, err)
	second, err := seeder.SeedAIProfile()
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("first_name = ?", AIProfileName).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeeder_PrivateThreadsNeverResolved(t *testing.T) {
	db := setupSeedDB(t, "seed_private")
	seeder := NewSeeder(db)

	_, err := seeder.Run(Options{NumProfiles: 10, NumQuestions: 30, ShouldClean: false})
	require.NoError(t, err)

	var questions []models.Question
	require.NoError(t, db.Preload("Topics").Find(&questions).Error)
	for _, q := range questions {
		if q.HasPrivateTopic() {
			assert.Nil(t, q.ResolvedByID, "private-topic thread %d must not be resolved", q.ID)
		}
	}
}
