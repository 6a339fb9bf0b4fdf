package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// AttachmentSystem keeps item visuals on their parent's attach point and
// destroys visuals whose parent is gone.
type AttachmentSystem struct{}

func NewAttachmentSystem() *AttachmentSystem {
	return &AttachmentSystem{}
}

func (s *AttachmentSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AttachmentComponent.Kind(), func(e ecs.Entity, _ *component.Attachment) {
		if !snapAttachment(w, e) {
			ecs.DestroyEntity(w, e)
		}
	})
}

// snapAttachment moves e onto its parent. It returns false when the parent
// no longer exists.
func snapAttachment(w *ecs.World, e ecs.Entity) bool {
	att, ok := ecs.Get(w, e, component.AttachmentComponent.Kind())
	if !ok {
		return true
	}
	parent := ecs.Entity(att.Parent)
	if !ecs.IsAlive(w, parent) {
		return false
	}
	pt, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
	if !ok {
		return true
	}

	facingLeft := false
	if mv, ok := ecs.Get(w, parent, component.CharacterMovementComponent.Kind()); ok {
		facingLeft = mv.FacingX < 0
	}

	offsetX := att.OffsetX
	if att.Mirror && facingLeft {
		offsetX = -offsetX
	}

	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return true
		}
	}
	t.X = pt.X + offsetX
	t.Y = pt.Y + att.OffsetY

	if att.Mirror {
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = facingLeft
		}
	}
	return true
}
