package emit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

// TargetTypeScript is the Target of the TypeScript formatter.
const TargetTypeScript = "typescript"

var tsIdentifier = regexp.MustCompile(`^[\p{L}\p{Nl}$_][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}$]*$`)

// TypeScript renders IconUtils.ts and its index.ts barrel.
type TypeScript struct{}

func (TypeScript) Target() string { return TargetTypeScript }

// Format implements Formatter.
func (TypeScript) Format(m *Module) ([]GeneratedFile, error) {
	for _, c := range m.Categories {
		if !tsIdentifier.MatchString(c.Name) {
			return nil, fmt.Errorf("typescript: category %q: %w %s", c.Key, ErrInvalidIdentifier, c.Name)
		}
	}
	for _, icon := range m.Icons {
		if !tsIdentifier.MatchString(icon.Name) {
			return nil, fmt.Errorf("typescript: icon %q: %w %s", icon.ClassName, ErrInvalidIdentifier, icon.Name)
		}
	}

	var b strings.Builder
	b.WriteString(`// tslint:disable
// WARNING: this file is auto generated by glyphforge, do not modify manually
import chalk from 'chalk';

export class IconMetadata {
  public readonly className: string;
  public readonly unicode: string;
  public readonly categories: Readonly<string[]>;
  constructor(className: string, unicode: string, categories: string[]) {
    this.className = className;
    this.unicode = unicode;
    this.categories = categories;
  }
}

export abstract class IconUtils {
  // categories
`)
	for _, c := range m.Categories {
		fmt.Fprintf(&b, "  public static readonly %s = %s;\n", c.Name, tsQuote(c.Key))
	}

	b.WriteString("  // icons\n")
	for _, icon := range m.Icons {
		fmt.Fprintf(&b, "  public static readonly %s = new IconMetadata(%s, %s, %s);\n",
			icon.Name, tsQuote(icon.ClassName), tsQuote(icon.Unicode), tsRefList(icon.Categories))
	}

	fmt.Fprintf(&b, `  // parse function
  public static parse(iconKey: string): IconMetadata {
    if (IconUtils.ICONS.has(iconKey)) {
      return IconUtils.ICONS.get(iconKey)!;
    } else {
      const message = 'icon with key "' + iconKey + %s;
      // tslint:disable-next-line:no-console
      console.warn(chalk.yellow(message));
      return new IconMetadata(iconKey, '', []);
    }
  }
  // maps and arrays
`, tsQuote(`" `+m.Parse.Message))

	b.WriteString("  public static readonly CATEGORIES: Readonly<Map<string, IconMetadata[]>> = new Map(")
	entries := make([]string, len(m.Forward))
	for i, f := range m.Forward {
		entries[i] = fmt.Sprintf("[%s, %s]", tsQuote(f.Key), tsRefList(f.Icons))
	}
	writeTSEntries(&b, entries)

	b.WriteString("  private static readonly ICONS: Readonly<Map<string, IconMetadata>> = new Map(")
	entries = make([]string, len(m.Reverse))
	for i, r := range m.Reverse {
		entries[i] = fmt.Sprintf("[%s, IconUtils.%s]", tsQuote(r.Key), r.Icon)
	}
	writeTSEntries(&b, entries)
	b.WriteString("}\n")

	return []GeneratedFile{
		{Name: "IconUtils.ts", Data: []byte(b.String())},
		{Name: "index.ts", Data: []byte("// tslint:disable\nexport * from './IconUtils';\n")},
	}, nil
}

func writeTSEntries(b *strings.Builder, entries []string) {
	if len(entries) == 0 {
		b.WriteString("[]);\n")
		return
	}
	b.WriteString("[\n")
	for _, e := range entries {
		fmt.Fprintf(b, "    %s,\n", e)
	}
	b.WriteString("  ]);\n")
}

func tsRefList(names []string) string {
	refs := make([]string, len(names))
	for i, n := range names {
		refs[i] = "IconUtils." + n
	}
	return "[" + strings.Join(refs, ", ") + "]"
}

// tsQuote returns s as a single-quoted TypeScript string literal with every
// non-ASCII character escaped.
func tsQuote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch {
		case r == '\'':
			b.WriteString(`\'`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r >= 0x7f:
			if r > 0xffff {
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
			} else {
				fmt.Fprintf(&b, `\u%04x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
