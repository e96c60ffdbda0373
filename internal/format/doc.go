// Package format re-emits a parsed OpenSCAD file in canonical layout.
//
// Назначение: печать дерева разбора с каноническими отступами и пробелами,
// с сохранением всех комментариев и пустых строк из hidden-канала.
// Не делает: разбор исходника (internal/lexer, internal/parser) и файловый IO
// (internal/driver).
// Зависимости: internal/ast, internal/token.
//
// One Renderer formats one file. It owns a Writer for the duration of the
// walk and buffers the whole output; the sink is written once after the walk
// completes.
package format
