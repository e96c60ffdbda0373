// Package fuzztests houses Go fuzz harnesses for the formatter pipeline
// (source -> lexer -> parser -> renderer). They guard against panics and
// hangs on arbitrary input and check that the lexer never loses bytes.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// рендерер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/format.
package fuzztests
