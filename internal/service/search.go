package service

import (
	"sort"
	"strings"

	"github.com/blanco81/app-task/internal/models"
)

// Relevance scoring for /tasks/filter and /users/filter. A prefix match on
// the primary field outweighs a substring match anywhere else; ties break
// alphabetically on the primary field.

func scoreTask(task *models.Task, term string) int {
	score := 0
	name := strings.ToLower(task.TaskName)
	description := strings.ToLower(task.Description)
	status := strings.ToLower(task.Status)

	if strings.HasPrefix(name, term) {
		score += 100
	} else if strings.Contains(name, term) {
		score += 30
	}

	if description != "" && (strings.HasPrefix(description, term) || strings.Contains(description, term)) {
		score += 50
	}

	if strings.HasPrefix(status, term) || strings.Contains(status, term) {
		score += 20
	}

	return score
}

func scoreUser(user *models.User, term string) int {
	score := 0
	name := strings.ToLower(user.NameComplete)
	email := strings.ToLower(user.Email)
	role := strings.ToLower(user.Role)

	if strings.HasPrefix(name, term) {
		score += 100
	} else if strings.Contains(name, term) {
		score += 30
	}

	if strings.HasPrefix(email, term) || strings.HasPrefix(role, term) {
		score += 50
	} else if strings.Contains(email, term) || strings.Contains(role, term) {
		score += 20
	}

	return score
}

func filterTasks(tasks []models.Task, search string) []models.Task {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return tasks
	}

	type scored struct {
		task  models.Task
		score int
	}
	matched := make([]scored, 0, len(tasks))
	for _, task := range tasks {
		if s := scoreTask(&task, term); s > 0 {
			matched = append(matched, scored{task: task, score: s})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		return matched[i].task.TaskName < matched[j].task.TaskName
	})

	out := make([]models.Task, len(matched))
	for i, m := range matched {
		out[i] = m.task
	}
	return out
}

func filterUsers(users []models.User, search string) []models.User {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return users
	}

	type scored struct {
		user  models.User
		score int
	}
	matched := make([]scored, 0, len(users))
	for _, user := range users {
		if s := scoreUser(&user, term); s > 0 {
			matched = append(matched, scored{user: user, score: s})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		return matched[i].user.NameComplete < matched[j].user.NameComplete
	})

	out := make([]models.User, len(matched))
	for i, m := range matched {
		out[i] = m.user
	}
	return out
}

// paginate slices out [offset, offset+limit) without reading past the end.
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
