package html2pptx

import "github.com/alnah/go-html2pptx/internal/pptx"

// DeckBuilder creates empty decks with a fixed page size.
type DeckBuilder interface {
	NewDeck(page PageSize) (Deck, error)
}

// Deck is a presentation under construction. Pages keep the order in which
// they were appended.
type Deck interface {
	// AppendFullBleedPage adds a page whose image covers it entirely,
	// offset (0,0), extent equal to the page size.
	AppendFullBleedPage(imagePath string) error
	Len() int
	Save(path string) error
}

// Compile-time interface checks.
var (
	_ DeckBuilder = pptxBuilder{}
	_ Deck        = (*pptxDeck)(nil)
)

// pptxBuilder builds PowerPoint decks.
type pptxBuilder struct{}

// NewPPTXBuilder returns the default DeckBuilder, which writes .pptx files.
func NewPPTXBuilder() DeckBuilder {
	return pptxBuilder{}
}

func (pptxBuilder) NewDeck(page PageSize) (Deck, error) {
	d, err := pptx.New(page.Width, page.Height)
	if err != nil {
		return nil, err
	}
	return &pptxDeck{deck: d}, nil
}

// pptxDeck adapts *pptx.Deck to Deck.
type pptxDeck struct {
	deck *pptx.Deck
}

func (d *pptxDeck) AppendFullBleedPage(imagePath string) error {
	return d.deck.AddFullBleedPicture(imagePath)
}

func (d *pptxDeck) Len() int {
	return d.deck.Len()
}

func (d *pptxDeck) Save(path string) error {
	return d.deck.Save(path)
}
