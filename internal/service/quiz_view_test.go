package service

import (
	"encoding/json"
	"strings"
	"testing"

	"course_hub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnerViewNeverCarriesAnswerKey(t *testing.T) {
	quiz := threeQuestionQuiz()
	view := NewLearnerQuizView(quiz)

	data, err := json.Marshal(view)
	require.NoError(t, err)

	body := strings.ToLower(string(data))
	assert.NotContains(t, body, "iscorrect")
	assert.NotContains(t, body, "is_correct")
	assert.NotContains(t, body, "correct")
}

func TestLearnerViewKeepsStructureAndOrder(t *testing.T) {
	quiz := threeQuestionQuiz()
	view := NewLearnerQuizView(quiz)

	assert.Equal(t, quiz.ID, view.ID)
	assert.Equal(t, quiz.PassingScorePercent, view.PassingScorePercent)
	require.Len(t, view.Questions, len(quiz.Questions))

	for i, q := range view.Questions {
		assert.Equal(t, quiz.Questions[i].ID, q.ID)
		assert.Equal(t, quiz.Questions[i].Prompt, q.Prompt)
		assert.Equal(t, quiz.Questions[i].Points, q.Points)
		require.Len(t, q.Options, len(quiz.Questions[i].Options))
		for j, o := range q.Options {
			assert.Equal(t, quiz.Questions[i].Options[j].ID, o.ID)
			assert.Equal(t, quiz.Questions[i].Options[j].Content, o.Content)
		}
	}
}

func TestLearnerViewsProjectEveryQuiz(t *testing.T) {
	views := NewLearnerQuizViews([]model.Quiz{*threeQuestionQuiz(), *threeQuestionQuiz()})
	assert.Len(t, views, 2)
}
