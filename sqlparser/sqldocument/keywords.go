package sqldocument

import (
	"sort"
	"strings"
)

// KeywordSet is the reserved-word vocabulary of one dialect. Multi-word
// keywords ("group by", "create or replace") are indexed by their first
// word and tried longest first, so the scanner returns them as one token.
type KeywordSet struct {
	words map[string]struct{}
	multi map[string][][]string
}

// NewKeywordSet builds a set from the shared vocabulary plus extra words.
// Entries containing spaces are multi-word keywords.
func NewKeywordSet(extra ...string) *KeywordSet {
	k := &KeywordSet{
		words: make(map[string]struct{}, len(reservedWords)+len(extra)),
		multi: make(map[string][][]string),
	}
	k.add(reservedWords...)
	k.add(multiWordKeywords...)
	k.add(extra...)
	for _, seqs := range k.multi {
		sort.SliceStable(seqs, func(i, j int) bool {
			return len(seqs[i]) > len(seqs[j])
		})
	}
	return k
}

func (k *KeywordSet) add(words ...string) {
	for _, w := range words {
		parts := strings.Fields(strings.ToLower(w))
		switch len(parts) {
		case 0:
		case 1:
			k.words[parts[0]] = struct{}{}
		default:
			k.multi[parts[0]] = append(k.multi[parts[0]], parts[1:])
		}
	}
}

// IsReserved reports whether the lowercase word is a single-word keyword.
func (k *KeywordSet) IsReserved(word string) bool {
	_, ok := k.words[word]
	return ok
}

// continuations returns the possible trailing word sequences of multi-word
// keywords starting with word, longest first.
func (k *KeywordSet) continuations(word string) [][]string {
	return k.multi[word]
}

var DefaultKeywords = NewKeywordSet()

var multiWordKeywords = []string{
	"begin atomic",
	"begin distributed transaction",
	"begin tran",
	"begin transaction",
	"begin work",
	"create or replace",
	"cross join",
	"delete from",
	"distinct on",
	"end case",
	"end if",
	"end loop",
	"except all",
	"foreign key",
	"full join",
	"full outer join",
	"group by",
	"inner join",
	"insert into",
	"intersect all",
	"is not null",
	"is null",
	"left join",
	"left outer join",
	"materialized view",
	"natural join",
	"not null",
	"order by",
	"package body",
	"partition by",
	"primary key",
	"right join",
	"right outer join",
	"type body",
	"union all",
}

// shared vocabulary; standard SQL plus the client-side command verbs the
// delimiter testers look at
var reservedWords = []string{
	"absolute", "action", "add", "after", "aggregate", "all", "allocate", "alter", "analyze",
	"and", "any", "are", "array", "as", "asc", "assertion", "at", "atomic", "authorization",
	"avg", "before", "begin", "between", "bigint", "binary", "bit", "blob", "body", "boolean",
	"both", "by", "call", "cascade", "cascaded", "case", "cast", "catalog", "char",
	"character", "check", "clob", "close", "coalesce", "collate", "column", "comment",
	"commit", "connect", "connection", "constraint", "constraints", "continue", "convert",
	"count", "create", "cross", "cube", "current", "current_date", "current_time",
	"current_timestamp", "current_user", "cursor", "cycle", "database", "date", "day",
	"deallocate", "dec", "decimal", "declare", "default", "deferrable", "deferred",
	"delete", "delimiter", "desc", "describe", "deterministic", "disconnect", "distinct",
	"do", "domain", "double", "drop", "each", "else", "elsif", "end", "escape", "event",
	"except", "exception", "exec", "execute", "exists", "explain", "external", "extract",
	"false", "fetch", "first", "float", "for", "foreign", "from", "full", "function",
	"get", "global", "go", "goto", "grant", "group", "having", "hour", "identity", "if",
	"immediate", "in", "index", "inner", "inout", "input", "insensitive", "insert", "int",
	"integer", "intersect", "interval", "into", "is", "isolation", "java", "join", "key",
	"language", "last", "leading", "left", "level", "library", "like", "limit", "local",
	"loop", "lower", "match", "max", "merge", "min", "minus", "minute", "month", "names",
	"national", "natural", "nchar", "next", "no", "not", "null", "nullif", "numeric",
	"of", "offset", "on", "only", "open", "option", "or", "order", "out", "outer",
	"over", "package", "partition", "prepare", "preserve", "primary", "prior",
	"privileges", "procedure", "prompt", "public", "read", "real", "recursive",
	"references", "relative", "rename", "replace", "restrict", "return", "returns",
	"revoke", "right", "role", "rollback", "rows", "savepoint", "schema", "second",
	"select", "sequence", "session", "session_user", "set", "show", "smallint", "some",
	"spool", "sql", "start", "substring", "sum", "synonym", "system_user", "table",
	"temporary", "then", "time", "timestamp", "to", "trailing", "transaction",
	"trigger", "trim", "true", "truncate", "type", "union", "unique", "unknown",
	"update", "upper", "usage", "use", "user", "using", "value", "values", "varchar",
	"varying", "view", "when", "whenever", "where", "while", "with", "work", "write",
	"year", "zone",
}
