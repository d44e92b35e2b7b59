// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"quorum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// AIProfileName is the display name of the seeded AI answerer profile.
const AIProfileName = "Max"

// Options configures a seeding run.
type Options struct {
	NumProfiles  int
	NumQuestions int
	ShouldClean  bool
}

// Seeder builds demo threads and persists them to the database.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	now := time.Now().UnixNano()
	gofakeit.Seed(now)
	return &Seeder{db: db, rand: rand.New(rand.NewSource(now))}
}

// ClearAll wipes all seeded tables.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM question_topics",
		"DELETE FROM profile_teams",
		"DELETE FROM replies",
		"DELETE FROM questions",
		"DELETE FROM topics",
		"DELETE FROM profiles",
		"DELETE FROM teams",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("cleanup failed on %q: %w", stmt, err)
		}
	}
	return nil
}

// SeedAIProfile creates (or finds) the profile that authors machine-generated
// replies and returns it.
func (s *Seeder) SeedAIProfile() (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("first_name = ?", AIProfileName).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	profile = models.Profile{
		FirstName: AIProfileName,
		AvatarKey: "ai-answerer.png",
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create AI profile: %w", err)
	}
	return &profile, nil
}

// SeedCommunity creates teams, member and staff profiles, and topics. Roughly
// a quarter of profiles get a team membership so staff badges show up in demo
// threads.
func (s *Seeder) SeedCommunity(numProfiles int) ([]*models.Profile, []models.Topic, error) {
	teams := []models.Team{
		{Name: "Engineering"},
		{Name: "Support"},
		{Name: "Docs"},
	}
	for i := range teams {
		if err := s.db.Where(models.Team{Name: teams[i].Name}).FirstOrCreate(&teams[i]).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create team: %w", err)
		}
	}

	profiles := make([]*models.Profile, 0, numProfiles)
	for i := 0; i < numProfiles; i++ {
		profile := &models.Profile{
			FirstName: gofakeit.FirstName(),
			AvatarKey: fmt.Sprintf("%s.png", gofakeit.UUID()),
		}
		if s.rand.Intn(3) == 0 {
			pronouns := gofakeit.RandomString([]string{"she/her", "he/him", "they/them"})
			profile.Pronouns = &pronouns
		}
		// Some profiles never set a name; the UI falls back to "Anonymous".
		if s.rand.Intn(12) == 0 {
			profile.FirstName = ""
		}
		if s.rand.Intn(4) == 0 {
			profile.Teams = []models.Team{teams[s.rand.Intn(len(teams))]}
		}
		if err := s.db.Create(profile).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	topicLabels := []string{
		"deployment", "authentication", "billing", "sdk", "self-hosting",
		"#internal", "#roadmap",
	}
	topics := make([]models.Topic, 0, len(topicLabels))
	for _, label := range topicLabels {
		topic := models.Topic{Label: label}
		if err := s.db.Where(models.Topic{Label: label}).FirstOrCreate(&topic).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create topic: %w", err)
		}
		topics = append(topics, topic)
	}

	return profiles, topics, nil
}

// SeedThreads creates questions with human and AI replies. A slice of threads
// get resolved, some replies stay unpublished, and AI replies carry a mix of
// helpful verdicts so every interaction state is visible in demo data.
func (s *Seeder) SeedThreads(profiles []*models.Profile, topics []models.Topic, ai *models.Profile, numQuestions int) ([]*models.Question, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles to author questions")
	}

	questions := make([]*models.Question, 0, numQuestions)
	for i := 0; i < numQuestions; i++ {
		author := profiles[s.rand.Intn(len(profiles))]
		question := &models.Question{
			Subject:   gofakeit.Question(),
			Body:      gofakeit.Paragraph(1, 3, 8, "\n"),
			ProfileID: &author.ID,
			CreatedAt: s.pastTimestamp(60),
		}
		if s.rand.Intn(3) == 0 {
			question.Topics = []models.Topic{topics[s.rand.Intn(len(topics))]}
		}
		if err := s.db.Create(question).Error; err != nil {
			return nil, fmt.Errorf("failed to create question: %w", err)
		}

		replies, err := s.seedReplies(question, profiles, ai)
		if err != nil {
			return nil, err
		}

		// Resolve roughly a third of threads on one of their replies, but
		// never on a private-topic thread.
		if len(replies) > 0 && s.rand.Intn(3) == 0 && !question.HasPrivateTopic() {
			chosen := replies[s.rand.Intn(len(replies))]
			if err := s.db.Model(question).Update("resolved_by_id", chosen.ID).Error; err != nil {
				return nil, fmt.Errorf("failed to resolve question: %w", err)
			}
		}

		questions = append(questions, question)
	}
	return questions, nil
}

func (s *Seeder) seedReplies(question *models.Question, profiles []*models.Profile, ai *models.Profile) ([]*models.Reply, error) {
	numReplies := s.rand.Intn(4)
	replies := make([]*models.Reply, 0, numReplies+1)

	for i := 0; i < numReplies; i++ {
		author := profiles[s.rand.Intn(len(profiles))]
		reply := &models.Reply{
			Body:       gofakeit.Paragraph(1, 2, 10, "\n"),
			QuestionID: question.ID,
			ProfileID:  &author.ID,
			CreatedAt:  question.CreatedAt.Add(time.Duration(i+1) * time.Hour),
		}
		// Most replies are published; the rest wait for moderation.
		if s.rand.Intn(5) != 0 {
			publishedAt := reply.CreatedAt.Add(10 * time.Minute)
			reply.PublishedAt = &publishedAt
		}
		if err := s.db.Create(reply).Error; err != nil {
			return nil, fmt.Errorf("failed to create reply: %w", err)
		}
		replies = append(replies, reply)
	}

	// Half the threads get an AI reply as the first responder.
	if ai != nil && s.rand.Intn(2) == 0 {
		publishedAt := question.CreatedAt.Add(2 * time.Minute)
		aiReply := &models.Reply{
			Body:        gofakeit.Paragraph(1, 2, 12, "\n"),
			QuestionID:  question.ID,
			ProfileID:   &ai.ID,
			CreatedAt:   question.CreatedAt.Add(time.Minute),
			PublishedAt: &publishedAt,
		}
		// Mix of judged and unjudged AI replies.
		switch s.rand.Intn(3) {
		case 0:
			helpful := true
			aiReply.Helpful = &helpful
		case 1:
			helpful := false
			aiReply.Helpful = &helpful
		}
		if err := s.db.Create(aiReply).Error; err != nil {
			return nil, fmt.Errorf("failed to create AI reply: %w", err)
		}
		replies = append(replies, aiReply)
	}

	return replies, nil
}

func (s *Seeder) pastTimestamp(maxDays int) time.Time {
	daysBack := s.rand.Intn(maxDays)
	hoursBack := s.rand.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}

// Run executes a full seeding pass with the given options and returns the AI
// profile id for wiring into AI_PROFILE_ID.
func (s *Seeder) Run(opts Options) (uint, error) {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return 0, err
		}
	}

	ai, err := s.SeedAIProfile()
	if err != nil {
		return 0, err
	}
	profiles, topics, err := s.SeedCommunity(opts.NumProfiles)
	if err != nil {
		return 0, err
	}
	if _, err := s.SeedThreads(profiles, topics, ai, opts.NumQuestions); err != nil {
		return 0, err
	}
	return ai.ID, nil
}
