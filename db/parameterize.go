package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
)

// ParameterizedQuery is an sql file parsed into a named-statement body
// with its parameters extracted.
type ParameterizedQuery struct {
	Body       []byte
	Parameters []string
}

// String provides a printable representation.
func (p ParameterizedQuery) String() string {
	tpl := `
Params: %s
Body:   %s
`
	return fmt.Sprintf(tpl, strings.Join(p.Parameters, ", "), string(p.Body))
}

// regexpParam matches lines such as
//
//	,date('2019-01-01') AS Since    /* @param */
//
// extracting the `Since` parameter and replacing the default value
// with a named placeholder:
//
//	,:Since AS Since    /* @param */
//
// Note that the spacing around the parameter needs to be precise.
var (
	paramAtoms = []string{
		`(?:date\('[^']+'\))`,        // date('2019-01-01')
		`(?:[a-zA-Z_]\w*\([^\)]*\))`, // any_func(...)
		`(?:'[^']*')`,                // 'a string' or ''
		`(?:-?\d*\.?\d+)`,            // 123 or 1.23 or -5
		`(?:null)`,                   // null
	}

	// regexpParam is made of 4 named components. The 'value' element is
	// built up out of the non-capturing paramAtoms items.
	regexpParam = regexp.MustCompile(fmt.Sprintf(
		`(?P<value>%s)(?P<as>\s+AS\s+)(?P<param>[A-Za-z0-9_]+)(?P<end>\s+/\* @param \*/)`,
		strings.Join(paramAtoms, "|"),
	))
)

// parameterize takes an sql query with inline parameter declarations
// and turns it into a named-statement body. Each declaration carries a
// default value so the file stays directly runnable against a local
// snapshot on the sqlite command line:
//
//	,5000000 AS MinSpend    /* @param */
//
// which is replaced with a named placeholder and the field name
// extracted as a parameter, returning
//
//	*ParameterizedQuery{
//	    Parameters: []string{"MinSpend"},
//	    Body      : []byte(`,:MinSpend AS MinSpend    /* @param */`),
//	}
//
// Multiple declarations in a query are handled, as shown in the test.
// A query without declarations is an error; load those with
// db.loadQuery instead.
func parameterize(tpl []byte) (*ParameterizedQuery, error) {

	matches := regexpParam.FindAllSubmatch(tpl, -1)
	if len(matches) == 0 {
		return nil, errors.New("parameterize: no parameters found")
	}

	pq := &ParameterizedQuery{
		Parameters: make([]string, len(matches)),
	}

	paramIdx := regexpParam.SubexpIndex("param")
	for i := range matches {
		pq.Parameters[i] = string(matches[i][paramIdx])
	}

	// Use : quoted parameter names such as `:MinSpend` for sqlx to
	// rebind to the driver's placeholder style.
	pq.Body = regexpParam.ReplaceAll(tpl, []byte(`:${param}${as}${param}${end}`))
	return pq, nil
}

// ParameterizeFile takes an sql file and returns a ParameterizedQuery
// or error.
func ParameterizeFile(fileFS fs.FS, filePath string) (*ParameterizedQuery, error) {

	fileBytes, err := fs.ReadFile(fileFS, filePath)
	if err != nil {
		return nil, fmt.Errorf("file read error: %w", err)
	}
	query, err := parameterize(fileBytes)
	if err != nil {
		return nil, fmt.Errorf("query template error: %w", err)
	}
	return query, nil

}
