package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/signup"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	selectIdx    []int
	infoMessages []string
	selectSeen   [][]string
	selectHelp   []string
	inputPos     int
	passPos      int
	confirmPos   int
	selectPos    int
	inputErr     error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectSeen = append(s.selectSeen, cfg.Options)
	s.selectHelp = append(s.selectHelp, cfg.Help)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func defaultForm(t *testing.T) model.FormModel {
	t.Helper()
	form, err := model.Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	return form
}

func TestRun_FullFlow(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"Max", "Robinson", "bad", "", "555",
			"m@example.com",
			"Max", "Robinson", "m@example.com", "555",
		},
		passwords: []string{"secret1", "secret1"},
		confirm:   []bool{true, true, true},
		selectIdx: []int{0, 1, 0, 1, 1},
	}

	var calls []signup.Values
	auth := signup.AuthClientFunc(func(_ context.Context, values signup.Values) (signup.Session, error) {
		calls = append(calls, values)
		if len(calls) == 1 {
			return signup.Session{}, &signup.AuthError{Message: "Email taken"}
		}
		return signup.Session{ID: "s1"}, nil
	})
	ctrl := signup.NewController(auth)

	outcome, err := New(WithPromptDriver(driver)).Run(context.Background(), defaultForm(t), ctrl)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome != signup.OutcomeSucceeded {
		t.Fatalf("expected success, got %s", outcome)
	}
	if len(calls) != 2 {
		t.Fatalf("expected two sign up calls, got %d", len(calls))
	}
	want := signup.Values{
		FirstName:      "Max",
		LastName:       "Robinson",
		Email:          "m@example.com",
		Password:       "secret1",
		ContactNumbers: []string{"555"},
		AcceptTerms:    true,
	}
	if diff := cmp.Diff(want, calls[1]); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"Create an account",
		"Enter your details below to create your account.",
		"Already have an account? Sign in: /sign-in",
		"✗ Email: Invalid email address",
		"✗ Email taken",
		"✓ Account created.",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	wantMenus := [][]string{
		{"Add contact number", "Continue"},
		{"Add contact number", "Remove a contact number", "Continue"},
		{"#1 (empty)", "#2 555"},
		{"Add contact number", "Continue"},
		{"Add contact number", "Continue"},
	}
	if diff := cmp.Diff(wantMenus, driver.selectSeen); diff != "" {
		t.Fatalf("menus mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_DeclineRetry(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Max", "Robinson", "m@example.com", "555"},
		passwords: []string{"secret1"},
		confirm:   []bool{true, false},
		selectIdx: []int{1},
	}
	auth := signup.AuthClientFunc(func(context.Context, signup.Values) (signup.Session, error) {
		return signup.Session{}, errors.New("boom")
	})
	ctrl := signup.NewController(auth)

	outcome, err := New(WithPromptDriver(driver)).Run(context.Background(), defaultForm(t), ctrl)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome != signup.OutcomeFailed {
		t.Fatalf("expected failed outcome, got %s", outcome)
	}
	last := driver.infoMessages[len(driver.infoMessages)-1]
	if last != "✗ "+signup.GenericErrorMessage {
		t.Fatalf("unexpected last message %q", last)
	}
}

func TestRun_PlainThemeAndMenuHelp(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Max", "Robinson", "m@example.com", "555", ""},
		passwords: []string{"secret1"},
		confirm:   []bool{true},
		selectIdx: []int{0, 1, 1, 1},
	}
	auth := signup.AuthClientFunc(func(context.Context, signup.Values) (signup.Session, error) {
		return signup.Session{ID: "s1"}, nil
	})
	ctrl := signup.NewController(auth)

	outcome, err := New(WithPromptDriver(driver), WithTheme(PlainTheme)).Run(context.Background(), defaultForm(t), ctrl)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome != signup.OutcomeSucceeded {
		t.Fatalf("expected success, got %s", outcome)
	}
	if last := driver.infoMessages[len(driver.infoMessages)-1]; last != "ok: Account created." {
		t.Fatalf("unexpected last message %q", last)
	}

	wantHelp := []string{
		"Choose Continue when every number is entered.",
		"Choose Continue when every number is entered.",
		"At least one entry is always kept.",
		"Choose Continue when every number is entered.",
	}
	if diff := cmp.Diff(wantHelp, driver.selectHelp); diff != "" {
		t.Fatalf("menu help mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Aborted(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	ctrl := signup.NewController(nil)

	_, err := New(WithPromptDriver(driver)).Run(context.Background(), defaultForm(t), ctrl)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRun_RequiresController(t *testing.T) {
	_, err := New(WithPromptDriver(&stubDriver{})).Run(context.Background(), defaultForm(t), nil)
	if !errors.Is(err, ErrControllerMissing) {
		t.Fatalf("expected ErrControllerMissing, got %v", err)
	}
}

func TestPathLabel(t *testing.T) {
	form := defaultForm(t)
	cases := map[string]string{
		"email":            "Email",
		"contactNumbers":   "Contact numbers",
		"contactNumbers.2": "Contact number #3",
		"unknown":          "unknown",
	}
	for path, want := range cases {
		if got := pathLabel(form, path); got != want {
			t.Errorf("pathLabel(%q) = %q, want %q", path, got, want)
		}
	}
}
