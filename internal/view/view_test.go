package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/view"
)

func TestMenuToggleAndOutsideClick(t *testing.T) {
	m := view.NewMenu()
	assert.True(t, m.Hidden())

	assert.False(t, m.Toggle())
	assert.False(t, m.Click(view.TargetMenu), "click inside keeps it open")
	assert.False(t, m.Click(view.TargetMenuButton), "click on the button is not outside")
	assert.True(t, m.Click("body"), "outside click hides it")

	assert.True(t, m.Click("body"), "outside click on a hidden menu is a no-op")
}

func TestModalDismiss(t *testing.T) {
	var m view.Modal
	m.Open(view.DialogPassword)
	m.Click(false)
	assert.Equal(t, view.DialogPassword, m.Current())
	m.Click(true)
	assert.Equal(t, "", m.Current())
}

// render serves the dialog through gin the way the dashboard endpoint does.
func render(t *testing.T, d view.Dialog) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, err := view.ParseTemplates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/dialog", func(c *gin.Context) { c.HTML(http.StatusOK, view.DialogTemplate, d) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dialog", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestDurationDialogRendersCurrentValuesAndBounds(t *testing.T) {
	html := render(t, view.DurationDialog(model.Duration{Hours: 2, Minutes: 30}))

	assert.Contains(t, html, `class="modal-backdrop"`)
	assert.Contains(t, html, `<h3>Edit Lecture Duration</h3>`)
	assert.Contains(t, html, `id="modalHours" min="0" max="5" value="2"`)
	assert.Contains(t, html, `id="modalMinutes" min="0" max="59" value="30"`)
	assert.Contains(t, html, `id="saveDur"`)
	assert.Contains(t, html, `id="cancelDur"`)
}

func TestDurationDialogZeroValues(t *testing.T) {
	assert.Contains(t, render(t, view.DurationDialog(model.Duration{})), `id="modalHours" min="0" max="5" value="0"`)
}

func TestDialogByName(t *testing.T) {
	for _, name := range []string{view.DialogDuration, view.DialogDarkMode, view.DialogPassword} {
		d, ok := view.DialogByName(name, model.Duration{})
		require.True(t, ok, name)
		assert.Equal(t, name, d.Name)

		assert.Contains(t, render(t, d), `data-dialog="`+name+`"`)
	}

	_, ok := view.DialogByName("logout", model.Duration{})
	assert.False(t, ok)
}

func TestPasswordDialogHasNoValue(t *testing.T) {
	assert.Contains(t, render(t, view.PasswordDialog()), `<input type="password" id="newPass">`)
}

func TestSuccessMessage(t *testing.T) {
	assert.Equal(t, view.Message{Kind: "success", Text: "ok"}, view.Success("ok"))
}
