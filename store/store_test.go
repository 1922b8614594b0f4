package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser("alice@example.com", "alice", "hash1"))

	u, err := s.UserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hash1", u.Password)
	assert.NotZero(t, u.ID)

	byName, err := s.UserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = s.UserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUser_Duplicates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser("alice@example.com", "alice", "h"))

	assert.ErrorIs(t, s.CreateUser("alice@example.com", "other", "h"), ErrDuplicate)
	assert.ErrorIs(t, s.CreateUser("other@example.com", "alice", "h"), ErrDuplicate)
}

func TestUpdatePassword(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser("alice@example.com", "alice", "old"))

	require.NoError(t, s.UpdatePassword("alice@example.com", "new"))
	u, err := s.UserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new", u.Password)

	assert.ErrorIs(t, s.UpdatePassword("nobody@example.com", "x"), ErrNotFound)
}

func TestJobs(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.CreateJob(Job{Title: "Backend Dev", Company: "Acme", PostedBy: "alice"})
	require.NoError(t, err)
	id2, err := s.CreateJob(Job{Title: "Data Engineer", Company: "Globex", Location: "Remote"})
	require.NoError(t, err)

	jobs, err := s.ListJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	// Newest first.
	assert.Equal(t, id2, jobs[0].ID)
	assert.Equal(t, id1, jobs[1].ID)

	j, err := s.JobByID(id1)
	require.NoError(t, err)
	assert.Equal(t, "Backend Dev", j.Title)
	assert.Equal(t, "alice", j.PostedBy)

	require.NoError(t, s.DeleteJob(id1))
	_, err = s.JobByID(id1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteJob(id1), ErrNotFound)
}

func TestSavedJobs(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser("alice@example.com", "alice", "h"))
	u, err := s.UserByEmail("alice@example.com")
	require.NoError(t, err)
	jobID, err := s.CreateJob(Job{Title: "Dev", Company: "Acme"})
	require.NoError(t, err)

	require.NoError(t, s.SaveJob(u.ID, jobID))
	assert.ErrorIs(t, s.SaveJob(u.ID, jobID), ErrDuplicate)

	saved, err := s.SavedJobs(u.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, jobID, saved[0].ID)

	require.NoError(t, s.UnsaveJob(u.ID, jobID))
	assert.ErrorIs(t, s.UnsaveJob(u.ID, jobID), ErrNotFound)

	saved, err = s.SavedJobs(u.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestApplications(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser("alice@example.com", "alice", "h"))
	u, err := s.UserByEmail("alice@example.com")
	require.NoError(t, err)
	jobID, err := s.CreateJob(Job{Title: "Dev", Company: "Acme"})
	require.NoError(t, err)

	_, err = s.Apply(u.ID, 9999, "/resumes/a.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	appID, err := s.Apply(u.ID, jobID, "/resumes/a.pdf")
	require.NoError(t, err)
	assert.NotZero(t, appID)

	apps, err := s.Applications(u.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Dev", apps[0].JobTitle)
	assert.Equal(t, "Acme", apps[0].JobCompany)
	assert.Equal(t, "/resumes/a.pdf", apps[0].ResumePath)
}

func TestChatHistory(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateUser("alice@example.com", "alice", "h"))
	u, err := s.UserByEmail("alice@example.com")
	require.NoError(t, err)

	require.NoError(t, s.SaveChat(ChatLearning, u.ID, "q1", "a1"))
	require.NoError(t, s.SaveChat(ChatLearning, u.ID, "q2", "a2"))
	require.NoError(t, s.SaveChat(ChatCareer, u.ID, "career q", "career a"))

	learning, err := s.ChatHistory(ChatLearning, u.ID)
	require.NoError(t, err)
	require.Len(t, learning, 2)
	// Newest first; the career table is untouched.
	assert.Equal(t, "q2", learning[0].Message)
	assert.Equal(t, "q1", learning[1].Message)

	career, err := s.ChatHistory(ChatCareer, u.ID)
	require.NoError(t, err)
	require.Len(t, career, 1)
	assert.Equal(t, "career q", career[0].Message)

	require.NoError(t, s.ClearChat(ChatLearning, u.ID))
	learning, err = s.ChatHistory(ChatLearning, u.ID)
	require.NoError(t, err)
	assert.Empty(t, learning)

	career, err = s.ChatHistory(ChatCareer, u.ID)
	require.NoError(t, err)
	assert.Len(t, career, 1)
}

func TestChatHistory_UnknownKind(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ChatHistory(ChatKind("bogus"), 1)
	assert.Error(t, err)
	assert.Error(t, s.SaveChat(ChatKind("bogus"), 1, "m", "r"))
	assert.Error(t, s.ClearChat(ChatKind("bogus"), 1))
}
