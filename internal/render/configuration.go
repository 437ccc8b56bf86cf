package render

import "strings"

// DatasourceBlock renders the datasource configuration header placed above
// the datamodel, e.g.
//
//	datasource db {
//	provider = "postgresql"
//	url = env("DATABASE_URL")
//	}
type DatasourceBlock struct {
	name     string
	provider string
	url      string
	urlEnv   string
}

// NewDatasourceBlock creates a datasource header for the given provider.
func NewDatasourceBlock(name, provider string) *DatasourceBlock {
	return &DatasourceBlock{name: name, provider: provider}
}

// URL sets a literal connection URL.
func (d *DatasourceBlock) URL(url string) {
	d.url = url
	d.urlEnv = ""
}

// URLFromEnv renders the URL as env("VAR") instead of a literal, keeping
// credentials out of the emitted schema.
func (d *DatasourceBlock) URLFromEnv(variable string) {
	d.urlEnv = variable
	d.url = ""
}

func (d *DatasourceBlock) String() string {
	var sb strings.Builder
	sb.WriteString("datasource ")
	sb.WriteString(d.name)
	sb.WriteString(" {\n")
	sb.WriteString("provider = ")
	sb.WriteString(NewText(d.provider).String())
	sb.WriteByte('\n')
	switch {
	case d.urlEnv != "":
		sb.WriteString("url = env(")
		sb.WriteString(NewText(d.urlEnv).String())
		sb.WriteString(")\n")
	case d.url != "":
		sb.WriteString("url = ")
		sb.WriteString(NewText(d.url).String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
	return sb.String()
}
