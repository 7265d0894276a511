package types

import "reflect"

// ============================================================================
//                              TypeID - 类型标识
// ============================================================================

// TypeID 运行时类型标识
//
// 包装 reflect.Type，作为命令表、事件表和资源容器的唯一键。
// 同一进程内稳定、无冲突，可直接比较（==）并用作 map 键。
//
// 外部表示格式：
//   - String(): 完整类型名（包含包路径前缀，如 "*mediator.Bus"）
//   - Name(): 短类型名（日志使用）
type TypeID struct {
	t reflect.Type
}

// EmptyTypeID 空类型标识
var EmptyTypeID TypeID

// TypeFor 返回类型参数 T 的类型标识
//
// T 为接口类型时返回接口类型本身，而不是动态类型。
// 注册键与取值目标必须都来自同一个编译期类型参数。
func TypeFor[T any]() TypeID {
	return TypeID{t: reflect.TypeFor[T]()}
}

// TypeOf 返回值的动态类型标识
//
// v 为 nil 时返回 EmptyTypeID。
func TypeOf(v any) TypeID {
	if v == nil {
		return EmptyTypeID
	}
	return TypeID{t: reflect.TypeOf(v)}
}

// String 返回完整类型名
func (id TypeID) String() string {
	if id.t == nil {
		return "<nil>"
	}
	return id.t.String()
}

// Name 返回短类型名
//
// 指针类型返回 "*" 加元素名；未命名类型退化为 String()。
func (id TypeID) Name() string {
	if id.t == nil {
		return "<nil>"
	}
	t := id.t
	prefix := ""
	for t.Kind() == reflect.Ptr {
		prefix += "*"
		t = t.Elem()
	}
	if t.Name() == "" {
		return id.t.String()
	}
	return prefix + t.Name()
}

// Type 返回底层 reflect.Type
func (id TypeID) Type() reflect.Type {
	return id.t
}

// IsEmpty 检查 TypeID 是否为空
func (id TypeID) IsEmpty() bool {
	return id.t == nil
}
