package contactguard

import (
	"strings"

	"contactguard/internal/core/signals"
)

// Signal thresholds. Weights decide how much a hit is worth, these decide
// whether it is a hit at all
const (
	mostlyDigitsRatio    = 0.5
	mostlyDigitsMinRunes = 6

	repeatRunMin   = 8
	repeatTotalMin = 10
	repeatRatioMin = 0.6

	lowUniqueRatio    = 0.2
	lowUniqueMinRunes = 10

	lowVowelRatio        = 0.2
	nameLowVowelLetters  = 10
	msgLowVowelLetters   = 16
	nameConsonantRun     = 6
	msgConsonantRun      = 10
	caseFlipsMin         = 8
	caseFlipsMinRunes    = 12
	shortURLMessageRunes = 40

	nameNoSpaceShortRunes = 12
	nameNoSpaceLongRunes  = 20

	msgSingleTokenLetters = 14
	msgNoSpaceShortRunes  = 8
	msgNoSpaceLongRunes   = 20
)

// Name flags
const (
	FlagNameNoLetters        = "name_no_letters"
	FlagNameMostlyDigits     = "name_mostly_digits"
	FlagNameRepeatedCharRun  = "name_repeated_char_run"
	FlagNameLowVowelRatio    = "name_low_vowel_ratio"
	FlagNameLongConsonantRun = "name_long_consonant_run"
	FlagNameManyCaseFlips    = "name_many_case_transitions"
	FlagNameRandomToken      = "name_random_token"
	FlagNameNoWhitespace     = "name_no_whitespace"
	FlagNameMixedCaseWord    = "name_mixed_case_word"
	FlagNameConsonantRun     = "name_consonant_digit_run"
)

// Message flags
const (
	FlagMsgNoLetters            = "message_no_letters"
	FlagMsgMostlyDigits         = "message_mostly_digits"
	FlagMsgManyURLs             = "message_many_urls"
	FlagMsgShortURL             = "message_url_short"
	FlagMsgRepeatedCharRun      = "message_repeated_char_run"
	FlagMsgLowUniqueRatio       = "message_low_unique_ratio"
	FlagMsgLowVowelRatio        = "message_low_vowel_ratio"
	FlagMsgLongConsonantRun     = "message_long_consonant_run"
	FlagMsgManyCaseFlips        = "message_many_case_transitions"
	FlagMsgRandomToken          = "message_random_token"
	FlagMsgSingleTokenLowVowels = "message_single_token_low_vowel_ratio"
	FlagMsgNoWhitespace         = "message_no_whitespace"
	FlagMsgMixedCaseWord        = "message_mixed_case_word"
	FlagMsgConsonantRun         = "message_consonant_digit_run"
)

// ScoreName folds the name rules into one result
func ScoreName(name string, w Weights) SignalResult {
	res := newResult()

	if signals.LetterCount(name) == 0 {
		res.add(w.NameNoLetters, FlagNameNoLetters)
	}
	if mostlyDigits(name) {
		res.add(w.MostlyDigits, FlagNameMostlyDigits)
	}
	if repeatedRun(name) {
		res.add(w.RepeatedCharRun, FlagNameRepeatedCharRun)
	}

	ascii := signals.ASCIILetters(name)
	if len(ascii) >= nameLowVowelLetters && signals.VowelRatio(ascii) < lowVowelRatio {
		res.add(w.LowVowelRatio, FlagNameLowVowelRatio)
	}
	if signals.LongestConsonantRun(ascii) >= nameConsonantRun {
		res.add(w.LongConsonantRun, FlagNameLongConsonantRun)
	}
	if manyCaseFlips(name) {
		res.add(w.ManyCaseFlips, FlagNameManyCaseFlips)
	}
	if anyRandomToken(name) {
		res.add(w.RandomToken, FlagNameRandomToken)
	}

	if !signals.HasWhitespace(name) {
		n := signals.RuneLen(name)
		switch {
		case n >= nameNoSpaceLongRunes:
			res.add(w.NameNoSpaceLong, FlagNameNoWhitespace)
		case n >= nameNoSpaceShortRunes:
			res.add(w.NameNoSpaceShort, FlagNameNoWhitespace)
		}
	}
	return res
}

// ScoreMessage folds the message rules into one result
func ScoreMessage(msg string, w Weights) SignalResult {
	res := newResult()
	n := signals.RuneLen(msg)

	if signals.LetterCount(msg) == 0 {
		res.add(w.MessageNoLetters, FlagMsgNoLetters)
	}
	if mostlyDigits(msg) {
		res.add(w.MostlyDigits, FlagMsgMostlyDigits)
	}

	switch urls := signals.CountURLs(msg); {
	case urls >= 2:
		res.add(w.ManyURLs, FlagMsgManyURLs)
	case urls == 1 && n < shortURLMessageRunes:
		res.add(w.ShortURL, FlagMsgShortURL)
	}

	if repeatedRun(msg) {
		res.add(w.RepeatedCharRun, FlagMsgRepeatedCharRun)
	}
	if n >= lowUniqueMinRunes && signals.UniqueCharRatio(msg) < lowUniqueRatio {
		res.add(w.LowUniqueRatio, FlagMsgLowUniqueRatio)
	}

	ascii := signals.ASCIILetters(msg)
	vowelRatio := signals.VowelRatio(ascii)
	if len(ascii) >= msgLowVowelLetters && vowelRatio < lowVowelRatio {
		res.add(w.LowVowelRatio, FlagMsgLowVowelRatio)
	}
	if signals.LongestConsonantRun(ascii) >= msgConsonantRun {
		res.add(w.LongConsonantRun, FlagMsgLongConsonantRun)
	}
	if manyCaseFlips(msg) {
		res.add(w.ManyCaseFlips, FlagMsgManyCaseFlips)
	}
	if anyRandomToken(msg) {
		res.add(w.RandomToken, FlagMsgRandomToken)
	}

	if n > 0 && !signals.HasWhitespace(msg) {
		switch {
		case len(ascii) >= msgSingleTokenLetters && vowelRatio < lowVowelRatio:
			res.add(w.MsgSingleTokenLowV, FlagMsgSingleTokenLowVowels)
		case n >= msgNoSpaceLongRunes:
			res.add(w.MsgNoSpaceLong, FlagMsgNoWhitespace)
		case n >= msgNoSpaceShortRunes:
			res.add(w.MsgNoSpaceShort, FlagMsgNoWhitespace)
		}
	}
	return res
}

func mostlyDigits(s string) bool {
	ratio, n := signals.DigitRatio(s)
	return n >= mostlyDigitsMinRunes && ratio > mostlyDigitsRatio
}

func repeatedRun(s string) bool {
	run, total := signals.LongestSameCharRun(s)
	return total >= repeatTotalMin && run >= repeatRunMin &&
		float64(run)/float64(total) > repeatRatioMin
}

func manyCaseFlips(s string) bool {
	return signals.RuneLen(s) >= caseFlipsMinRunes && signals.CaseTransitions(s) >= caseFlipsMin
}

func anyRandomToken(s string) bool {
	for _, tok := range strings.Fields(s) {
		if signals.LooksLikeRandomToken(tok) {
			return true
		}
	}
	return false
}
