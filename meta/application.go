package meta

import "github.com/pchchv/bitpack"

// Application contains third party application specific data.
type Application struct {
	ID   uint32 // registered application ID
	Data []byte
}

// parseApplication reads and parses the body of an Application metadata
// block.
func (block *Block) parseApplication(r *bitpack.Reader) error {
	if block.Length < 4 {
		return errShortBody("meta.Block.parseApplication", block.Length, 4)
	}

	// 32 bits: ID
	id, err := r.ReadUint32(32)
	if err != nil {
		return err
	}

	app := &Application{ID: id, Data: make([]byte, block.Length-4)}
	if err := r.ReadFixedBytes(8, app.Data); err != nil {
		return err
	}
	block.Body = app
	return nil
}

func (app *Application) write(w *bitpack.Writer) error {
	if err := w.WriteUint32(32, app.ID); err != nil {
		return err
	}
	return w.WriteFixedBytes(8, app.Data)
}
