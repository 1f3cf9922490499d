package sectionfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/tables"
	"github.com/beevik/etree"
)

// RootXMLName is the root element of XML table files.
const RootXMLName = "tsduck"

// LoadXML reads an XML table document from r. Each table is serialized and
// its section appended to the file.
func (f *File) LoadXML(r io.Reader) error {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidDocument, err)
	}

	return f.loadDocument(doc)
}

// LoadXMLString reads an inline XML table document.
func (f *File) LoadXMLString(s string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidDocument, err)
	}

	return f.loadDocument(doc)
}

// LoadXMLFile reads an XML table file.
func (f *File) LoadXMLFile(path string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}

		return fmt.Errorf("%s: %w: %w", path, errs.ErrInvalidDocument, err)
	}

	if err := f.loadDocument(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

func (f *File) loadDocument(doc *etree.Document) error {
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: no root element", errs.ErrInvalidDocument)
	}
	if root.Tag != RootXMLName {
		return fmt.Errorf("%w: root element <%s>, expected <%s>", errs.ErrInvalidDocument, root.Tag, RootXMLName)
	}

	for i, el := range root.ChildElements() {
		t, err := tables.FromXML(f.ctx, el)
		if err != nil {
			return fmt.Errorf("table %d <%s>: %w", i, el.Tag, err)
		}
		if err := f.AddTable(t); err != nil {
			return fmt.Errorf("table %d <%s>: %w", i, el.Tag, err)
		}
	}

	return nil
}

// Document builds the XML document of all decodable sections.
func (f *File) Document() (*etree.Document, error) {
	tbls, err := f.Tables()
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootXMLName)
	for _, t := range tbls {
		if _, err := tables.ToXML(f.ctx, root, t); err != nil {
			return nil, err
		}
	}
	doc.Indent(f.indent)

	return doc, nil
}

// SaveXML writes the XML document of the file to w.
func (f *File) SaveXML(w io.Writer) error {
	doc, err := f.Document()
	if err != nil {
		return err
	}

	_, err = doc.WriteTo(w)

	return err
}

// SaveXMLFile writes the XML document of the file to path.
func (f *File) SaveXMLFile(path string) error {
	doc, err := f.Document()
	if err != nil {
		return err
	}

	return doc.WriteToFile(path)
}
