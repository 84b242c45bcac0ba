package photobooth

// InjectPress queues a pointer press at the given screen coordinates. Queued
// events are consumed one per Booth.Update, the same path real input takes.
func (b *Booth) InjectPress(x, y float64) {
	b.injectQueue = append(b.injectQueue, PointerEvent{Kind: PointerDown, X: x, Y: y})
}

// InjectMove queues a pointer move at the given screen coordinates. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (b *Booth) InjectMove(x, y float64) {
	b.injectQueue = append(b.injectQueue, PointerEvent{Kind: PointerMove, X: x, Y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (b *Booth) InjectRelease(x, y float64) {
	b.injectQueue = append(b.injectQueue, PointerEvent{Kind: PointerUp, X: x, Y: y})
}

// InjectLeave queues the pointer leaving the canvas.
func (b *Booth) InjectLeave() {
	b.injectQueue = append(b.injectQueue, PointerEvent{Kind: PointerLeave})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two updates.
func (b *Booth) InjectClick(x, y float64) {
	b.InjectPress(x, y)
	b.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, a final move onto (toX, toY) and the release there.
// That is frames+1 events; frames below 2 are treated as 2, which queues
// press, move and release.
func (b *Booth) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	b.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		b.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	b.InjectMove(toX, toY)
	b.InjectRelease(toX, toY)
}

// InjectDrop queues a palette drag of src, rendered at size, released at
// the given screen coordinates.
func (b *Booth) InjectDrop(src string, size, x, y float64) {
	b.injectQueue = append(b.injectQueue, PointerEvent{Kind: PointerDrop, X: x, Y: y, Src: src, Size: size})
}

// processInjectedInput pops one queued event and feeds it through the
// controller. Returns true if an event was consumed.
func (b *Booth) processInjectedInput() bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	if err := b.ctl.HandlePointer(evt); err != nil {
		b.log.Warn("injected pointer event rejected", "kind", evt.Kind, "err", err)
	}
	return true
}
