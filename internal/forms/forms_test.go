package forms

import (
	"strings"
	"testing"
	"time"

	"campaign_forum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getter(m map[string]string) Getter {
	return func(k string) string { return m[k] }
}

func validCampaignValues() map[string]string {
	return map[string]string{
		"candidatename":   "Jane Roe",
		"incumbentname":   "John Doe",
		"officelevel":     "State",
		"officelocation":  "Oakland, CA",
		"office":          "Assembly District 18",
		"desiredbudget":   "1000000",
		"incumbentbudget": "500000",
		"incumbentparty":  "Independent",
		"campaignlink":    "https://roe.example",
	}
}

func TestValidate_Campaign(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := CampaignFrom(getter(validCampaignValues()))
		assert.True(t, Validate(f).Empty())

		fields, errs := f.Fields()
		require.True(t, errs.Empty(), "errors: %v", errs)
		assert.Equal(t, models.CampaignFields{
			CandidateName:   "Jane Roe",
			IncumbentName:   "John Doe",
			OfficeLevel:     "State",
			OfficeLocation:  "Oakland, CA",
			Office:          "Assembly District 18",
			DesiredBudget:   1000000,
			IncumbentBudget: 500000,
			IncumbentParty:  "Independent",
		}, fields)
	})

	cases := []struct {
		name    string
		field   string
		value   string
		wantMsg string
	}{
		{"missing candidate", "candidatename", "", MsgRequired},
		{"blank candidate", "candidatename", "   ", MsgRequired},
		{"missing office", "office", "", MsgRequired},
		{"missing party", "incumbentparty", "", MsgRequired},
		{"missing link", "campaignlink", "", MsgRequired},
		{"budget not a number", "desiredbudget", "a lot", MsgInvalidInt},
		{"budget decimal", "incumbentbudget", "12.5", MsgInvalidInt},
		{"budget zero counts as missing", "desiredbudget", "0", MsgRequired},
		{"budget empty", "incumbentbudget", "", MsgRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := validCampaignValues()
			values[tc.field] = tc.value

			errs := Validate(CampaignFrom(getter(values)))
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tc.wantMsg, errs.Get(tc.field))
		})
	}
}

func TestCampaignFields_RejectsInvalidForm(t *testing.T) {
	values := validCampaignValues()
	values["incumbentbudget"] = "lots"

	fields, errs := CampaignFrom(getter(values)).Fields()
	assert.Equal(t, Errors{"incumbentbudget": MsgInvalidInt}, errs)
	assert.Equal(t, models.CampaignFields{}, fields)
}

func TestValidate_CampaignAllMissing(t *testing.T) {
	errs := Validate(Campaign{})
	for _, field := range []string{
		"candidatename", "incumbentname", "officelevel", "officelocation", "office",
		"desiredbudget", "incumbentbudget", "incumbentparty", "campaignlink",
	} {
		assert.True(t, errs.Has(field), "expected error for %s", field)
	}
}

func TestCampaignFromModel_RoundTripsStoredFields(t *testing.T) {
	c := models.Campaign{
		ID:         "c1",
		AuthorID:   3,
		ModifyDate: time.Now(),
		CampaignFields: models.CampaignFields{
			CandidateName: "A", IncumbentName: "B", OfficeLevel: "Local", OfficeLocation: "Town",
			Office: "Mayor", DesiredBudget: 42, IncumbentBudget: -7, IncumbentParty: "Green",
		},
	}
	f := CampaignFromModel(c)
	assert.Equal(t, "42", f.DesiredBudget)
	assert.Equal(t, "-7", f.IncumbentBudget)
	assert.Empty(t, f.CampaignLink)

	// The link is the only thing the user must re-enter.
	errs := Validate(f)
	assert.Equal(t, Errors{"campaignlink": MsgRequired}, errs)

	f.CampaignLink = "https://x.example"
	fields, errs := f.Fields()
	require.True(t, errs.Empty(), "errors: %v", errs)
	assert.Equal(t, c.CampaignFields, fields)
}

func TestValidate_Registration(t *testing.T) {
	base := map[string]string{
		"username": "alice", "email": "alice@example.com", "fname": "Alice", "lname": "Liddell",
		"password": "s3cret", "password2": "s3cret",
	}
	assert.True(t, Validate(RegistrationFrom(getter(base))).Empty())

	bad := map[string]string{}
	for k, v := range base {
		bad[k] = v
	}
	bad["email"] = "not-an-email"
	bad["password2"] = "different"
	bad["fname"] = ""

	errs := Validate(RegistrationFrom(getter(bad)))
	assert.Equal(t, MsgInvalidEmail, errs.Get("email"))
	assert.Equal(t, "Field must be equal to password.", errs.Get("password2"))
	assert.Equal(t, MsgRequired, errs.Get("fname"))
	assert.False(t, errs.Has("username"))
}

func TestValidate_Login(t *testing.T) {
	f := LoginFrom(getter(map[string]string{"username": " bob ", "password": "pw", "remember_me": "y"}))
	assert.Equal(t, "bob", f.Username)
	assert.True(t, f.RememberMe)
	assert.True(t, Validate(f).Empty())

	errs := Validate(LoginFrom(getter(map[string]string{})))
	assert.Equal(t, Errors{"username": MsgRequired, "password": MsgRequired}, errs)
}

func TestValidate_PasswordForms(t *testing.T) {
	assert.Equal(t, MsgInvalidEmail, Validate(PasswordResetRequestFrom(getter(map[string]string{"email": "nope"}))).Get("email"))
	assert.Equal(t, MsgRequired, Validate(PasswordResetRequest{}).Get("email"))

	errs := Validate(PasswordResetFrom(getter(map[string]string{"password": "a", "password2": "b"})))
	assert.Equal(t, Errors{"password2": "Field must be equal to password."}, errs)
}

func TestValidate_PasswordByteLimit(t *testing.T) {
	atLimit := strings.Repeat("a", MaxPasswordBytes)
	assert.True(t, Validate(PasswordReset{Password: atLimit, Password2: atLimit}).Empty())

	// 36 two-byte runes: within a rune count of 72, one byte over the limit.
	over := strings.Repeat("é", 36) + "a"
	errs := Validate(PasswordReset{Password: over, Password2: over})
	assert.Equal(t, "Field cannot be longer than 72 characters.", errs.Get("password"))
	assert.False(t, errs.Has("password2"))

	reg := Registration{Username: "bob", Email: "bob@example.com", FirstName: "Bob", LastName: "B", Password: over, Password2: over}
	assert.Equal(t, Errors{"password": "Field cannot be longer than 72 characters."}, Validate(reg))
}

func TestValidate_Profile(t *testing.T) {
	ok := Profile{FirstName: "Ada", LastName: "Lovelace", Role: models.RoleTeacher}
	assert.True(t, Validate(ok).Empty())

	errs := Validate(Profile{FirstName: "Ada", LastName: "Lovelace", Role: "Principal", Image: "not a url"})
	assert.Equal(t, MsgBadChoice, errs.Get("role"))
	assert.Equal(t, MsgInvalidURL, errs.Get("image"))
}

func TestValidate_PostAndComment(t *testing.T) {
	p := PostFrom(getter(map[string]string{"subject": "Hi", "content": "Body", "rating": "4"}))
	assert.True(t, Validate(p).Empty())
	assert.Equal(t, 4, p.RatingValue())

	errs := Validate(Post{Subject: "Hi", Content: "Body", Rating: "6"})
	assert.Equal(t, Errors{"rating": MsgBadChoice}, errs)

	assert.Equal(t, Errors{"content": MsgRequired}, Validate(CommentFrom(getter(map[string]string{"content": "  "}))))
}

func TestErrors_AddKeepsFirst(t *testing.T) {
	e := Errors{}
	e.Add("username", "first")
	e.Add("username", "second")
	e.Merge(Errors{"username": "third", "email": "taken"})
	assert.Equal(t, Errors{"username": "first", "email": "taken"}, e)
}
