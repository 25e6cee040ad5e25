package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004

	// Ввод-вывод
	IOLoadFileError Code = 2001

	// Грамматика и структура директив
	DirInfo           Code = 3000
	DirMissingMagic   Code = 3001
	DirMissingKeyword Code = 3002
	DirUnknownKeyword Code = 3003
	DirMissingTrivia  Code = 3004
	DirBadBasedOn     Code = 3005
	DirNestedList     Code = 3010
	DirUnmatchedEnd   Code = 3011
	DirUnclosedList   Code = 3012

	// Резолюция деклараций
	ResInfo             Code = 4000
	ResExpectedStruct   Code = 4001
	ResExpectedFunction Code = 4002
	ResUnmatchedStart   Code = 4003

	// Патчинг целевых файлов
	PatchInfo            Code = 5000
	PatchDuplicateHeader Code = 5001
	PatchDuplicateFooter Code = 5002
	PatchUnmatchedFooter Code = 5003
	PatchUnmatchedHeader Code = 5004
	PatchExpectedInclude Code = 5005
	PatchMissingInclude  Code = 5006
	PatchInternal        Code = 5007

	// Наблюдаемость
	ObsTimings Code = 9001
)

var codeNames = map[Code]string{
	UnknownCode:                 "Unknown",
	LexInfo:                     "LexInfo",
	LexUnknownChar:              "LexUnknownChar",
	LexUnterminatedString:       "LexUnterminatedString",
	LexUnterminatedBlockComment: "LexUnterminatedBlockComment",
	LexUnterminatedChar:         "LexUnterminatedChar",
	IOLoadFileError:             "IOLoadFileError",
	DirInfo:                     "DirInfo",
	DirMissingMagic:             "DirMissingMagic",
	DirMissingKeyword:           "DirMissingKeyword",
	DirUnknownKeyword:           "DirUnknownKeyword",
	DirMissingTrivia:            "DirMissingTrivia",
	DirBadBasedOn:               "DirBadBasedOn",
	DirNestedList:               "DirNestedList",
	DirUnmatchedEnd:             "DirUnmatchedEnd",
	DirUnclosedList:             "DirUnclosedList",
	ResInfo:                     "ResInfo",
	ResExpectedStruct:           "ResExpectedStruct",
	ResExpectedFunction:         "ResExpectedFunction",
	ResUnmatchedStart:           "ResUnmatchedStart",
	PatchInfo:                   "PatchInfo",
	PatchDuplicateHeader:        "PatchDuplicateHeader",
	PatchDuplicateFooter:        "PatchDuplicateFooter",
	PatchUnmatchedFooter:        "PatchUnmatchedFooter",
	PatchUnmatchedHeader:        "PatchUnmatchedHeader",
	PatchExpectedInclude:        "PatchExpectedInclude",
	PatchMissingInclude:         "PatchMissingInclude",
	PatchInternal:               "PatchInternal",
	ObsTimings:                  "ObsTimings",
}

// ID returns the stable short identifier, e.g. "DT5001".
func (c Code) ID() string {
	return fmt.Sprintf("DT%04d", uint16(c))
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return c.ID()
}
