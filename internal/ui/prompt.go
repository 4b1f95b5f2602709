package ui

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
)

// ErrNotInteractive は端末がなく入力を求められないことを表す
var ErrNotInteractive = errors.New("input required but stdin is not a terminal")

// Password はパスワード入力を受け付ける（入力は非表示）
func Password(message string) (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}
	var result string
	prompt := &survey.Password{
		Message: message,
	}
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return result, nil
}

// Confirm は確認プロンプトを表示する
func Confirm(message string, defaultValue bool) (bool, error) {
	if !IsInteractive() {
		return false, ErrNotInteractive
	}
	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}
