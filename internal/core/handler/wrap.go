package handler

import "context"

// ============================================================================
//                              Wrap0..Wrap7 - 元数适配
// ============================================================================
//
// 每个元数一个独立但结构相同的适配函数，区别只在于解析的依赖数量。
// 函数签名统一为：
//
//	func(ctx, r1 T1, ..., rN TN, req Req) (Res, error)
//
// 依赖按声明顺序从资源容器解析，请求总是最后一个参数。

// Wrap0 适配不注入资源的处理器函数
func Wrap0[Req, Res any](fn func(context.Context, Req) (Res, error)) Handler {
	return newAdapter[Req, Res](nil, func(ctx context.Context, _ []any, req Req) (Res, error) {
		return fn(ctx, req)
	})
}

// Wrap1 适配注入 1 个资源的处理器函数
func Wrap1[T1, Req, Res any](fn func(context.Context, T1, Req) (Res, error)) Handler {
	return newAdapter[Req, Res]([]dependency{dep[T1]()}, func(ctx context.Context, d []any, req Req) (Res, error) {
		return fn(ctx, as[T1](d[0]), req)
	})
}

// Wrap2 适配注入 2 个资源的处理器函数
func Wrap2[T1, T2, Req, Res any](fn func(context.Context, T1, T2, Req) (Res, error)) Handler {
	return newAdapter[Req, Res]([]dependency{dep[T1](), dep[T2]()}, func(ctx context.Context, d []any, req Req) (Res, error) {
		return fn(ctx, as[T1](d[0]), as[T2](d[1]), req)
	})
}

// Wrap3 适配注入 3 个资源的处理器函数
func Wrap3[T1, T2, T3, Req, Res any](fn func(context.Context, T1, T2, T3, Req) (Res, error)) Handler {
	return newAdapter[Req, Res]([]dependency{dep[T1](), dep[T2](), dep[T3]()}, func(ctx context.Context, d []any, req Req) (Res, error) {
		return fn(ctx, as[T1](d[0]), as[T2](d[1]), as[T3](d[2]), req)
	})
}

// Wrap4 适配注入 4 个资源的处理器函数
func Wrap4[T1, T2, T3, T4, Req, Res any](fn func(context.Context, T1, T2, T3, T4, Req) (Res, error)) Handler {
	return newAdapter[Req, Res]([]dependency{dep[T1](), dep[T2](), dep[T3](), dep[T4]()}, func(ctx context.Context, d []any, req Req) (Res, error) {
		return fn(ctx, as[T1](d[0]), as[T2](d[1]), as[T3](d[2]), as[T4](d[3]), req)
	})
}

// Wrap5 适配注入 5 个资源的处理器函数
func Wrap5[T1, T2, T3, T4, T5, Req, Res any](fn func(context.Context, T1, T2, T3, T4, T5, Req) (Res, error)) Handler {
	return newAdapter[Req, Res]([]dependency{dep[T1](), dep[T2](), dep[T3](), dep[T4](), dep[T5]()}, func(ctx context.Context, d []any, req Req) (Res, error) {
		return fn(ctx, as[T1](d[0]), as[T2](d[1]), as[T3](d[2]), as[T4](d[3]), as[T5](d[4]), req)
	})
}

// Wrap6 适配注入 6 个资源的处理器函数
func Wrap6[T1, T2, T3, T4, T5, T6, Req, Res any](fn func(context.Context, T1, T2, T3, T4, T5, T6, Req) (Res, error)) Handler {
	return newAdapter[Req, Res]([]dependency{dep[T1](), dep[T2](), dep[T3](), dep[T4](), dep[T5](), dep[T6]()}, func(ctx context.Context, d []any, req Req) (Res, error) {
		return fn(ctx, as[T1](d[0]), as[T2](d[1]), as[T3](d[2]), as[T4](d[3]), as[T5](d[4]), as[T6](d[5]), req)
	})
}

// Wrap7 适配注入 7 个资源的处理器函数
func Wrap7[T1, T2, T3, T4, T5, T6, T7, Req, Res any](fn func(context.Context, T1, T2, T3, T4, T5, T6, T7, Req) (Res, error)) Handler {
	return newAdapter[Req, Res]([]dependency{dep[T1](), dep[T2](), dep[T3](), dep[T4](), dep[T5](), dep[T6](), dep[T7]()}, func(ctx context.Context, d []any, req Req) (Res, error) {
		return fn(ctx, as[T1](d[0]), as[T2](d[1]), as[T3](d[2]), as[T4](d[3]), as[T5](d[4]), as[T6](d[5]), as[T7](d[6]), req)
	})
}
