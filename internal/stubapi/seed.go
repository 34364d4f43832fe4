package stubapi

import "github.com/fmuoria/recruiter-dashboard/internal/models"

// Seed fills store with a sample job and scored candidates for local runs.
// It returns the job id.
func Seed(store *Store) string {
	jobID := store.CreateJob(models.JobDraft{
		Title:           "Backend Engineer",
		Department:      "Engineering",
		Location:        "Nairobi",
		Description:     "Build and run the services behind the hiring platform.",
		RequiredSkills:  []string{"Go", "PostgreSQL", "Docker"},
		ExperienceLevel: "mid",
		MinExperience:   2,
		MaxExperience:   5,
	})

	store.AddCandidate(models.Candidate{
		JobID:           jobID,
		Name:            "Amina Otieno",
		Email:           "amina@example.com",
		CurrentJobTitle: "Software Engineer",
		Education: models.ListEducation(
			models.EducationEntry{Degree: "BSc", Major: "Computer Science", University: "University of Nairobi"},
		),
		Skills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "gRPC", "Redis"},
		MatchResult: &models.MatchResult{
			JDMatch:         "88%",
			MissingKeywords: []string{},
			ProfileSummary:  "Four years building Go services with strong database experience.",
		},
	})
	store.AddCandidate(models.Candidate{
		JobID:           jobID,
		Name:            "Brian Kamau",
		Email:           "brian@example.com",
		CurrentJobTitle: "Python Developer",
		Education:       models.TextEducation("BSc Information Technology"),
		Skills:          []string{"Python", "Docker"},
		MatchResult: &models.MatchResult{
			JDMatch:         "64%",
			MissingKeywords: []string{"Go", "PostgreSQL"},
			ProfileSummary:  "Solid backend fundamentals, limited Go exposure.",
		},
	})
	store.AddCandidate(models.Candidate{
		JobID: jobID,
		Name:  "Carol Wanjiru",
		Email: "carol@example.com",
		MatchResult: &models.MatchResult{
			JDMatch:         "35%",
			MissingKeywords: []string{"Go", "Docker"},
		},
	})

	return jobID
}
